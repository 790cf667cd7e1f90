// Package openai is a typed client for the OpenAI text-generation API:
// completions, edits, search, classifications and answers.
//
// Each endpoint is a payload struct with a constructor returning the
// documented defaults. A Client sends any of them with Create:
//
//	client := openai.New(os.Getenv("OPENAI_API_KEY"))
//
//	edit := openai.NewEdit()
//	edit.Input = "What day of the wek is it?"
//	edit.Instruction = "Fix the spelling mistakes"
//
//	resp, err := client.Create(ctx, "text-davinci-edit-001", edit)
//	if code, ok := openai.StatusCode(err); ok {
//	    log.Printf("API refused the request: %d", code)
//	}
//
// Create issues exactly one request. Nothing is retried.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// DefaultIdleConnTimeout is how long pooled connections stay open unused.
const DefaultIdleConnTimeout = 90 * time.Second

// Client sends endpoint payloads to the API. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger

	idleConnTimeout time.Duration
	http2           bool
	timeout         time.Duration
	base            http.RoundTripper
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another host, e.g. a proxy or a test
// server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithIdleConnTimeout sets how long idle pooled connections are kept.
func WithIdleConnTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.idleConnTimeout = d
	}
}

// WithHTTP2 toggles attempting HTTP/2 on the pooled transport.
func WithHTTP2(enabled bool) Option {
	return func(c *Client) {
		c.http2 = enabled
	}
}

// WithTimeout bounds each call, including reading the body. Zero means no
// limit beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTransport replaces the pooled transport. The bearer token is still
// added on top of it.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.base = rt
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger for request tracing. Nil is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client authenticating with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:          apiKey,
		baseURL:         DefaultBaseURL,
		logger:          zap.NewNop(),
		idleConnTimeout: DefaultIdleConnTimeout,
		http2:           true,
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.base
	if base == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.ForceAttemptHTTP2 = c.http2
		transport.IdleConnTimeout = c.idleConnTimeout
		base = transport
	}

	c.httpClient = &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: apiKey,
				TokenType:   "Bearer",
			}),
			Base: base,
		},
		Timeout: c.timeout,
	}

	return c
}

// BaseURL returns the host requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Create sends endpoint and decodes the reply.
//
// engineID selects the engine for engine-scoped endpoints (completions,
// edits, search) and is ignored by the others. Failures are reported as
// *Error, except ErrMissingEngine.
func (c *Client) Create(ctx context.Context, engineID string, endpoint Endpoint) (*Response, error) {
	desc, err := endpoint.Request(c.baseURL, engineID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, desc.URL, bytes.NewReader(desc.Body))
	if err != nil {
		return nil, newError(KindTransport, err)
	}
	for key, values := range desc.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("Sending request",
		zap.String("method", desc.Method),
		zap.String("url", desc.URL),
		zap.Int("body_length", len(desc.Body)))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Request failed",
			zap.String("url", desc.URL),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
		return nil, newError(KindTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindIO, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("API returned error",
			zap.String("url", desc.URL),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, &Error{Kind: KindStatus, StatusCode: resp.StatusCode, Body: body}
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, newError(KindSerialization, err)
	}

	c.logger.Debug("Received response",
		zap.String("url", desc.URL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("id", out.ID),
		zap.String("object", out.Object))

	return &out, nil
}
