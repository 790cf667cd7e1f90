package openai

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the API host used when no base URL is configured.
const DefaultBaseURL = "https://api.openai.com"

// Endpoint is implemented by every request payload. Request must not
// perform I/O: it only describes the call.
type Endpoint interface {
	Request(baseURL, engineID string) (*Request, error)
}

// Request describes one HTTP call to the API. Authentication is added by
// the Client, not by the descriptor.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Model names the engines accepted by the classification and answer
// endpoints.
type Model string

const (
	ModelAda     Model = "ada"
	ModelBabbage Model = "babbage"
	ModelCurie   Model = "curie"
	ModelDavinci Model = "davinci"
)

// DefaultModel is used wherever a payload does not pick a model.
const DefaultModel = ModelAda

func post(baseURL, path string, payload any) (*Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, newError(KindSerialization, err)
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &Request{
		Method: http.MethodPost,
		URL:    joinURL(baseURL, path),
		Header: header,
		Body:   body,
	}, nil
}

// enginePath builds /v1/engines/{engine}/{action}.
func enginePath(engineID, action string) (string, error) {
	if strings.TrimSpace(engineID) == "" {
		return "", ErrMissingEngine
	}
	return "/v1/engines/" + url.PathEscape(engineID) + "/" + action, nil
}

func joinURL(baseURL, path string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "/") + path
}
