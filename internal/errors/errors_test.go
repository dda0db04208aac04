package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation error",
			err:        NewValidation("name must be between %d and %d characters", 2, 100),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "wrapped validation error",
			err:        fmt.Errorf("create: %w", NewValidation("bad input")),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "transition error",
			err:        &TransitionError{Action: "confirm", CurrentStatus: "completed"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "ILLEGAL_TRANSITION",
		},
		{
			name:       "appointment not found",
			err:        ErrAppointmentNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "APPOINTMENT_NOT_FOUND",
		},
		{
			name:       "center not found",
			err:        ErrCenterNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "CENTER_NOT_FOUND",
		},
		{
			name:       "duplicate pending request",
			err:        ErrDuplicatePending,
			wantStatus: http.StatusConflict,
			wantCode:   "DUPLICATE_PENDING_REQUEST",
		},
		{
			name:       "email exists",
			err:        ErrEmailExists,
			wantStatus: http.StatusConflict,
			wantCode:   "EMAIL_EXISTS",
		},
		{
			name:       "invalid credentials",
			err:        ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_CREDENTIALS",
		},
		{
			name:       "invalid token",
			err:        ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_TOKEN",
		},
		{
			name:       "unknown error hides details",
			err:        fmt.Errorf("dial tcp: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			if tt.wantCode == "INTERNAL_ERROR" {
				assert.Equal(t, "internal server error", httpErr.Message)
			}
		})
	}
}

func TestTransitionError_Message(t *testing.T) {
	err := &TransitionError{Action: "cancel", CurrentStatus: "pending"}
	assert.Equal(t, `cannot cancel appointment: current status is "pending"`, err.Error())
}
