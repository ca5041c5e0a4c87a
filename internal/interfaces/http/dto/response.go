package dto

import (
	"net/http"

	"github.com/wss/backend/internal/domain/shared"
)

// ErrorInfo carries the machine-readable part of an error response
type ErrorInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Response is the standard API response envelope
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response wrapping data
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	}
}

// Generic error codes used by the transport layer itself
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// GetHTTPStatus maps a domain error code to an HTTP status code. Exhausted
// retry budgets map to 503, a transient failure the caller may re-submit.
func GetHTTPStatus(code string) int {
	switch code {
	case shared.CodeNotFound, shared.CodeUnknownIdentifier:
		return http.StatusNotFound
	case shared.CodeInvalidArgument, ErrCodeBadRequest:
		return http.StatusBadRequest
	case shared.CodeAmbiguousLookup, shared.CodeConflict:
		return http.StatusConflict
	case shared.CodeRetriesExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
