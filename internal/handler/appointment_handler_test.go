package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentHandler_List_MalformedQueryParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "non-numeric skip", query: "skip=abc"},
		{name: "non-numeric limit", query: "limit=ten"},
		{name: "non-boolean order_desc", query: "order_desc=maybe"},
	}

	e := echo.New()
	// The service must never be reached for a malformed query.
	h := NewAppointmentHandler(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments?"+tt.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.List(c)

			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		})
	}
}
