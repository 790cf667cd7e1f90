package models

import "github.com/lypt0x/openai-go/internal/storage"

// ErrorResponse represents a gateway error response, shaped like the
// upstream API's own error body
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail provides error details
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// UsageHistoryResponse is returned by GET /v1/usage/history
type UsageHistoryResponse struct {
	Object string                `json:"object"`
	Days   int                   `json:"days"`
	Data   []storage.UsageRecord `json:"data"`
}

// NewError builds an ErrorResponse.
func NewError(errType, code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Message: message,
			Type:    errType,
			Code:    code,
		},
	}
}
