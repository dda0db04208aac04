package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"carebook/internal/errors"
	"carebook/internal/model"
	"carebook/internal/service"
)

// AppointmentHandler handles appointment endpoints.
type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// CreateAppointmentRequest is a public appointment request.
type CreateAppointmentRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Contact string `json:"contact" validate:"required,min=7,max=20"`
	Notes   string `json:"notes" validate:"omitempty,max=1000"`
}

// ScheduleAppointmentRequest is a staff booking with a confirmed date.
type ScheduleAppointmentRequest struct {
	Name            string    `json:"name" validate:"required,min=2,max=100"`
	Email           string    `json:"email" validate:"required,email"`
	Contact         string    `json:"contact" validate:"required,min=7,max=20"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Notes           string    `json:"notes" validate:"omitempty,max=1000"`
}

// ConfirmAppointmentRequest confirms a pending request.
type ConfirmAppointmentRequest struct {
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Notes           string    `json:"notes" validate:"omitempty,max=1000"`
}

// RescheduleAppointmentRequest moves an appointment to a new date.
type RescheduleAppointmentRequest struct {
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
}

// CancelAppointmentRequest carries the cancel/reject reason.
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellation_reason" validate:"required,min=3,max=500"`
}

// CompleteAppointmentRequest closes out an appointment.
type CompleteAppointmentRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=1000"`
}

var appointmentStatuses = map[string]struct{}{
	string(model.AppointmentStatusPending):   {},
	string(model.AppointmentStatusUpcoming):  {},
	string(model.AppointmentStatusCompleted): {},
	string(model.AppointmentStatusCancelled): {},
	string(model.AppointmentStatusRejected):  {},
}

// List godoc
// @Summary List appointments
// @Description Paginated, filterable appointment listing. Date params use YYYY-MM-DD; *_before/end_date include their full day.
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Exact status" Enums(pending, upcoming, completed, cancelled, rejected)
// @Param name query string false "Exact name"
// @Param contact query string false "Exact contact"
// @Param email query string false "Exact email"
// @Param search query string false "Substring across name, contact, email"
// @Param start_date query string false "appointment_date lower bound"
// @Param end_date query string false "appointment_date upper bound"
// @Param created_after query string false "created_at lower bound"
// @Param created_before query string false "created_at upper bound"
// @Param updated_after query string false "updated_at lower bound"
// @Param updated_before query string false "updated_at upper bound"
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (1-100)" default(50)
// @Param order_by query string false "Sort field, falls back to created_at"
// @Param order_desc query bool false "Descending order" default(true)
// @Success 200 {object} service.ListResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	skip, err := intQuery(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := intQuery(c, "limit", 50)
	if err != nil {
		return err
	}
	orderDesc, err := boolQuery(c, "order_desc", true)
	if err != nil {
		return err
	}
	params := service.ListParams{
		Skip:      skip,
		Limit:     limit,
		OrderBy:   queryDefault(c, "order_by", "created_at"),
		OrderDesc: orderDesc,
	}

	status := c.QueryParam("status")
	if status != "" {
		if _, ok := appointmentStatuses[status]; !ok {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "unknown status " + status,
				Code:  "VALIDATION_ERROR",
			})
		}
		params.Filter.Status = model.AppointmentStatus(status)
	}
	params.Filter.Name = c.QueryParam("name")
	params.Filter.Contact = c.QueryParam("contact")
	params.Filter.Email = c.QueryParam("email")
	params.Filter.Search = c.QueryParam("search")

	dates := []struct {
		param string
		dest  **time.Time
	}{
		{"start_date", &params.Filter.StartDate},
		{"end_date", &params.Filter.EndDate},
		{"created_after", &params.Filter.CreatedAfter},
		{"created_before", &params.Filter.CreatedBefore},
		{"updated_after", &params.Filter.UpdatedAfter},
		{"updated_before", &params.Filter.UpdatedBefore},
	}
	for _, d := range dates {
		raw := c.QueryParam(d.param)
		if raw == "" {
			continue
		}
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: d.param + " must use YYYY-MM-DD",
				Code:  "VALIDATION_ERROR",
			})
		}
		*d.dest = &parsed
	}

	result, err := h.appointmentService.List(c.Request().Context(), params)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary Get an appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} model.Appointment
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	appt, err := h.appointmentService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, appt)
}

// CreatePending godoc
// @Summary Submit a public appointment request
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body CreateAppointmentRequest true "Request data"
// @Success 201 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /appointments/request [post]
func (h *AppointmentHandler) CreatePending(c echo.Context) error {
	var req CreateAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	appt, err := h.appointmentService.CreatePending(c.Request().Context(), service.CreatePublicInput{
		Name:    req.Name,
		Email:   req.Email,
		Contact: req.Contact,
		Notes:   req.Notes,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, appt)
}

// Schedule godoc
// @Summary Book an appointment directly
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScheduleAppointmentRequest true "Booking data"
// @Success 201 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /appointments [post]
func (h *AppointmentHandler) Schedule(c echo.Context) error {
	var req ScheduleAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	appt, err := h.appointmentService.Schedule(c.Request().Context(), service.ScheduleInput{
		Name:            req.Name,
		Email:           req.Email,
		Contact:         req.Contact,
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
	}, actorID(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, appt)
}

// Confirm godoc
// @Summary Confirm a pending request
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body ConfirmAppointmentRequest true "Confirmation data"
// @Success 200 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id}/confirm [post]
func (h *AppointmentHandler) Confirm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req ConfirmAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	appt, err := h.appointmentService.Confirm(c.Request().Context(), id, service.ConfirmInput{
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
	}, actorID(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, appt)
}

// Reschedule godoc
// @Summary Reschedule an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body RescheduleAppointmentRequest true "New date"
// @Success 200 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id}/reschedule [post]
func (h *AppointmentHandler) Reschedule(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req RescheduleAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	appt, err := h.appointmentService.Reschedule(c.Request().Context(), id, service.RescheduleInput{
		AppointmentDate: req.AppointmentDate,
	}, actorID(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, appt)
}

// Cancel godoc
// @Summary Cancel an upcoming appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body CancelAppointmentRequest true "Reason"
// @Success 200 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	return h.terminate(c, h.appointmentService.Cancel)
}

// Reject godoc
// @Summary Reject a pending request
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body CancelAppointmentRequest true "Reason"
// @Success 200 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id}/reject [post]
func (h *AppointmentHandler) Reject(c echo.Context) error {
	return h.terminate(c, h.appointmentService.Reject)
}

func (h *AppointmentHandler) terminate(
	c echo.Context,
	op func(ctx context.Context, id uuid.UUID, input service.CancelInput, actor uuid.UUID) (*model.Appointment, error),
) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req CancelAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	appt, err := op(c.Request().Context(), id, service.CancelInput{Reason: req.CancellationReason}, actorID(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, appt)
}

// Complete godoc
// @Summary Complete an upcoming appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body CompleteAppointmentRequest true "Closing notes"
// @Success 200 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req CompleteAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	appt, err := h.appointmentService.Complete(c.Request().Context(), id, service.CompleteInput{
		Notes: req.Notes,
	}, actorID(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, appt)
}

// Delete godoc
// @Summary Permanently delete an appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.appointmentService.Delete(c.Request().Context(), id, actorID(c)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "appointment deleted successfully"})
}
