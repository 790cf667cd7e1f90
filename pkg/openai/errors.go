package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingEngine is returned when an engine-scoped endpoint is requested
// without an engine id.
var ErrMissingEngine = errors.New("openai: endpoint requires an engine id")

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	// KindIO means the response body could not be read.
	KindIO ErrorKind = iota + 1
	// KindTransport means the HTTP round trip itself failed.
	KindTransport
	// KindStatus means the API answered with a non-2xx status.
	KindStatus
	// KindSerialization means a payload could not be encoded or a reply decoded.
	KindSerialization
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// Error is the error type returned by Client.Create.
//
// StatusCode and Body are only set for KindStatus.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("io error: %v", e.Err)
	case KindTransport:
		return fmt.Sprintf("transport error: %v", e.Err)
	case KindStatus:
		msg := fmt.Sprintf("error code: %d", e.StatusCode)
		if text := http.StatusText(e.StatusCode); text != "" {
			msg += " " + text
		}
		if apiErr := e.APIError(); apiErr != nil && apiErr.Message != "" {
			msg += ": " + apiErr.Message
		}
		return msg
	case KindSerialization:
		return fmt.Sprintf("serialization error: %v", e.Err)
	default:
		return fmt.Sprintf("openai error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// APIError is the error object the API puts in non-2xx reply bodies.
type APIError struct {
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Param   *string `json:"param,omitempty"`
	Code    *string `json:"code,omitempty"`
}

// APIError decodes the provider error detail from Body. It returns nil when
// the body carries none.
func (e *Error) APIError() *APIError {
	if e == nil || e.Kind != KindStatus || len(e.Body) == 0 {
		return nil
	}
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &envelope); err != nil {
		return nil
	}
	return envelope.Error
}

// KindOf returns the kind of err, or 0 if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// StatusCode returns the HTTP status carried by err and whether there was one.
func StatusCode(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindStatus {
		return e.StatusCode, true
	}
	return 0, false
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}
