package server

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/lypt0x/openai-go/internal/config"
	"github.com/lypt0x/openai-go/internal/storage"
	"github.com/lypt0x/openai-go/pkg/openai"
	"go.uber.org/zap"
)

// Creator sends one endpoint payload upstream. *openai.Client implements it.
type Creator interface {
	Create(ctx context.Context, engineID string, endpoint openai.Endpoint) (*openai.Response, error)
}

// Server is the local gateway in front of the API
type Server struct {
	cfg        *config.Config
	logger     *zap.Logger
	router     *gin.Engine
	client     Creator
	usageStore *storage.UsageStore
}

// New creates a new server instance
func New(cfg *config.Config, client Creator, logger *zap.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)

	s := &Server{
		cfg:        cfg,
		logger:     logger,
		router:     gin.New(),
		client:     client,
		usageStore: storage.NewUsageStore(cfg.Storage.UsageDir),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Router returns the gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.loggerMiddleware())

	if s.cfg.Security.EnableCORS {
		s.router.Use(s.corsMiddleware())
	}
}

func (s *Server) setupRoutes() {
	s.router.GET("/", func(c *gin.Context) {
		c.String(200, "ok")
	})

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/ping", s.ping)

	api := s.router.Group("/v1")
	api.Use(s.apiKeyAuthMiddleware())
	{
		api.POST("/engines/:engine/completions", forward(s, "completions", openai.NewCompletion))
		api.POST("/engines/:engine/edits", forward(s, "edits", openai.NewEdit))
		api.POST("/engines/:engine/search", forward(s, "search", openai.NewSearch))
		api.POST("/classifications", forward(s, "classifications", openai.NewClassification))
		api.POST("/answers", forward(s, "answers", openai.NewAnswer))

		api.GET("/usage/history", s.getUsageHistory)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

func (s *Server) ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}
