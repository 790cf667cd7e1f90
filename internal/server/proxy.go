package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lypt0x/openai-go/internal/models"
	"github.com/lypt0x/openai-go/pkg/openai"
	"go.uber.org/zap"
)

// forward returns a handler that binds the body onto a default payload,
// so omitted fields keep their documented defaults, and sends it upstream.
func forward[T openai.Endpoint](s *Server, name string, newPayload func() T) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := newPayload()
		if err := c.ShouldBindJSON(payload); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, models.NewError("invalid_request_error", "invalid_json",
				"Invalid request: "+err.Error()))
			return
		}

		engine := c.Param("engine")
		start := time.Now()

		resp, err := s.client.Create(c.Request.Context(), engine, payload)
		if err != nil {
			s.logger.Warn("Upstream request failed",
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.String("endpoint", name),
				zap.String("engine", engine),
				zap.String("kind", openai.KindOf(err).String()),
				zap.Duration("latency", time.Since(start)),
				zap.Error(err))
			s.writeUpstreamError(c, err)
			return
		}

		s.logger.Info("Request successful",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("endpoint", name),
			zap.String("engine", engine),
			zap.Duration("latency", time.Since(start)))

		var promptTokens, completionTokens int64
		if resp.Usage != nil {
			promptTokens = int64(resp.Usage.PromptTokens)
			completionTokens = int64(resp.Usage.CompletionTokens)
		}
		if err := s.usageStore.RecordUsage(name, promptTokens, completionTokens); err != nil {
			s.logger.Warn("Failed to record usage", zap.Error(err))
		}

		c.JSON(http.StatusOK, resp)
	}
}

// writeUpstreamError passes API status codes through and reports every
// other failure as 502.
func (s *Server) writeUpstreamError(c *gin.Context, err error) {
	if errors.Is(err, openai.ErrMissingEngine) {
		c.JSON(http.StatusBadRequest, models.NewError("invalid_request_error", "missing_engine", err.Error()))
		return
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.Kind == openai.KindStatus {
		if detail := apiErr.APIError(); detail != nil {
			c.JSON(apiErr.StatusCode, gin.H{"error": detail})
			return
		}
		c.JSON(apiErr.StatusCode, models.NewError("upstream_error", strconv.Itoa(apiErr.StatusCode), string(apiErr.Body)))
		return
	}

	c.JSON(http.StatusBadGateway, models.NewError("upstream_error", openai.KindOf(err).String(), err.Error()))
}

func (s *Server) getUsageHistory(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, models.NewError("invalid_request_error", "invalid_days",
				"days must be a positive integer"))
			return
		}
		days = parsed
	}

	records, err := s.usageStore.GetUsageHistory(days)
	if err != nil {
		s.logger.Error("Failed to read usage history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.NewError("server_error", "", "Failed to read usage history"))
		return
	}

	c.JSON(http.StatusOK, models.UsageHistoryResponse{
		Object: "list",
		Days:   days,
		Data:   records,
	})
}
