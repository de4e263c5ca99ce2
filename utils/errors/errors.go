package errors

import (
	"fmt"
	"net/http"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target carries the same code, so an error built with
// WithDetails still matches its sentinel under errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetails returns a copy of e carrying details.
func (e *APIError) WithDetails(format string, args ...any) *APIError {
	return NewAPIError(e.Code, e.Message, e.Status, fmt.Sprintf(format, args...))
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrInvalidInput = NewAPIError("INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	ErrUnauthorized = NewAPIError("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrNotFound     = NewAPIError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrInternal     = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)

	// Venue pipeline failures. All of them are recoverable by changing the input and trying again.
	ErrInvalidLocation    = NewAPIError("INVALID_LOCATION", "Invalid location. Please enter a valid town or city name, adding a state or region if needed", http.StatusUnprocessableEntity)
	ErrServiceUnavailable = NewAPIError("SERVICE_UNAVAILABLE", "Error fetching data from the venue service. Please try again", http.StatusBadGateway)
	ErrNoVenuesFound      = NewAPIError("NO_VENUES_FOUND", "No venues found. Please try another location or radius", http.StatusNotFound)
	ErrNoMatchingVenue    = NewAPIError("NO_MATCHING_VENUE", "No venue matches the selected category", http.StatusNotFound)
)

func Wrap(err error, code, message string, status int) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return NewAPIError(code, message, status, err.Error())
}
