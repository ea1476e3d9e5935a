package dashboard

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewAPIError creates a new APIError with the given parameters
func NewAPIError(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with additional details
func NewAPIErrorWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

var (
	ErrInvalidRequest     = NewAPIError(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrNotFound           = NewAPIError(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrNoRecentSales      = NewAPIError(http.StatusUnprocessableEntity, "NO_RECENT_SALES", "No recent sales to price against")
	ErrInternalServer     = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrServiceUnavailable = NewAPIError(http.StatusServiceUnavailable, "NO_DATA", "No dataset is loaded")
)

// InvalidParameter reports a query or body field that failed to parse.
func InvalidParameter(field, message string) *APIError {
	return NewAPIErrorWithDetails(http.StatusBadRequest, "INVALID_PARAMETER", "Invalid parameter value", ValidationError{
		Field:   field,
		Message: message,
	})
}

// ValidationFailed reports every rejected field of a request body.
func ValidationFailed(fields []ValidationError) *APIError {
	return NewAPIErrorWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", fields)
}

// NotFoundError creates a not found error naming the resource.
func NotFoundError(resource string) *APIError {
	return NewAPIErrorWithDetails(http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("%s not found", resource), resource)
}

func renderError(w http.ResponseWriter, r *http.Request, e *APIError) {
	_ = render.Render(w, r, e)
}
