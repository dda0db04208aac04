package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAppointmentNotFound is returned when an appointment is not found.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrCenterNotFound is returned when a center is not found.
	ErrCenterNotFound = errors.New("center not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when registering with an email already in use.
	ErrEmailExists = errors.New("email already registered")
	// ErrDuplicatePending is returned when a pending request already exists for the email.
	ErrDuplicatePending = errors.New("a pending appointment request already exists for this email")
	// ErrInvalidCredentials is returned when login credentials do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a token is missing, expired or revoked.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ValidationError reports malformed input rejected before any store
// access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError with a formatted message.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TransitionError reports an illegal appointment status transition.
// It names the current status so callers can explain why the request
// was refused.
type TransitionError struct {
	Action        string
	CurrentStatus string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s appointment: current status is %q", e.Action, e.CurrentStatus)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	}
	var transitionErr *TransitionError
	if errors.As(err, &transitionErr) {
		return NewHTTPError(http.StatusBadRequest, transitionErr.Error(), "ILLEGAL_TRANSITION")
	}

	switch {
	case errors.Is(err, ErrAppointmentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "APPOINTMENT_NOT_FOUND")
	case errors.Is(err, ErrCenterNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CENTER_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_EXISTS")
	case errors.Is(err, ErrDuplicatePending):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_PENDING_REQUEST")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
