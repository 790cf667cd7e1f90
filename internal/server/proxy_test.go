package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lypt0x/openai-go/internal/config"
	"github.com/lypt0x/openai-go/internal/models"
	"github.com/lypt0x/openai-go/pkg/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const gatewayKey = "gw-test-key-0001"

type upstreamCall struct {
	Path string
	Auth string
	Body map[string]interface{}
}

func setupTestServer(t *testing.T, status int, reply string) (*Server, *[]upstreamCall) {
	t.Helper()

	calls := &[]upstreamCall{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		call := upstreamCall{Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
		json.Unmarshal(data, &call.Body)
		*calls = append(*calls, call)

		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Server.Mode = "test"
	cfg.Security.APIKey = gatewayKey
	cfg.Storage.UsageDir = filepath.Join(t.TempDir(), "usage")

	client := openai.New("sk-upstream", openai.WithBaseURL(upstream.URL))
	return New(cfg, client, zap.NewNop()), calls
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+gatewayKey)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestCompletions_AppliesDefaults(t *testing.T) {
	s, calls := setupTestServer(t, 200, `{
		"id": "cmpl-1", "object": "text_completion",
		"choices": [{"text": "world", "index": 0, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 2, "completion_tokens": 1, "total_tokens": 3}
	}`)

	w := doRequest(s, "POST", "/v1/engines/davinci/completions", `{"prompt": "hello", "max_tokens": 5}`)
	require.Equal(t, 200, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/v1/engines/davinci/completions", call.Path)
	assert.Equal(t, "Bearer sk-upstream", call.Auth)
	assert.Equal(t, "hello", call.Body["prompt"])
	assert.Equal(t, float64(5), call.Body["max_tokens"])
	assert.Equal(t, float64(1), call.Body["temperature"])
	assert.Equal(t, float64(1), call.Body["best_of"])

	var resp openai.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "world", resp.Choices[0].Text)

	history, err := s.usageStore.GetUsageHistory(1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "completions", history[0].Endpoint)
	assert.Equal(t, int64(3), history[0].TotalTokens)
}

func TestSearch_EmptyBodyUsesDefaults(t *testing.T) {
	s, calls := setupTestServer(t, 200, `{"object": "list", "data": []}`)

	w := doRequest(s, "POST", "/v1/engines/ada/search", "")
	require.Equal(t, 200, w.Code)

	require.Len(t, *calls, 1)
	assert.Equal(t, float64(200), (*calls)[0].Body["max_rerank"])
}

func TestClassifications_Forwarded(t *testing.T) {
	s, calls := setupTestServer(t, 200, `{"label": "Positive", "object": "classification"}`)

	w := doRequest(s, "POST", "/v1/classifications",
		`{"query": "great day", "examples": [["A happy moment", "Positive"]]}`)
	require.Equal(t, 200, w.Code)

	call := (*calls)[0]
	assert.Equal(t, "/v1/classifications", call.Path)
	assert.Equal(t, "davinci", call.Body["model"])
	assert.Equal(t, float64(200), call.Body["max_examples"])
	assert.Contains(t, w.Body.String(), `"label":"Positive"`)
}

func TestAnswers_UpstreamStatusPassedThrough(t *testing.T) {
	s, _ := setupTestServer(t, 429, `{"error": {"message": "Rate limit reached", "type": "requests"}}`)

	w := doRequest(s, "POST", "/v1/answers", `{"question": "which puppy is happy?"}`)
	assert.Equal(t, 429, w.Code)

	var body struct {
		Error openai.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Rate limit reached", body.Error.Message)

	history, err := s.usageStore.GetUsageHistory(1)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestEdits_MalformedUpstreamReply(t *testing.T) {
	s, _ := setupTestServer(t, 200, `not json`)

	w := doRequest(s, "POST", "/v1/engines/text-davinci-edit-001/edits", `{"input": "teh", "instruction": "fix"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "serialization", body.Error.Code)
}

func TestCompletions_InvalidJSON(t *testing.T) {
	s, calls := setupTestServer(t, 200, `{}`)

	w := doRequest(s, "POST", "/v1/engines/davinci/completions", `{"prompt": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, *calls)
}

func TestAPIKeyAuth(t *testing.T) {
	s, calls := setupTestServer(t, 200, `{}`)

	req := httptest.NewRequest("POST", "/v1/answers", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "missing_api_key")

	req = httptest.NewRequest("POST", "/v1/answers", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_api_key")

	req = httptest.NewRequest("POST", "/v1/answers", strings.NewReader(`{}`))
	req.Header.Set("Authorization", gatewayKey)
	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Bearer scheme")

	assert.Empty(t, *calls)
}

func TestUsageHistory(t *testing.T) {
	s, _ := setupTestServer(t, 200, `{}`)
	require.NoError(t, s.usageStore.RecordUsage("search", 0, 0))

	w := doRequest(s, "GET", "/v1/usage/history?days=3", "")
	require.Equal(t, 200, w.Code)

	var resp models.UsageHistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Days)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "search", resp.Data[0].Endpoint)

	w = doRequest(s, "GET", "/v1/usage/history?days=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	s, _ := setupTestServer(t, 200, `{}`)

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
