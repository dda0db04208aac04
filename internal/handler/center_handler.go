package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"carebook/internal/errors"
	"carebook/internal/service"
)

// CenterHandler handles service-center endpoints.
type CenterHandler struct {
	centerService service.CenterService
}

// NewCenterHandler creates a new center handler.
func NewCenterHandler(centerService service.CenterService) *CenterHandler {
	return &CenterHandler{centerService: centerService}
}

// CenterRequest carries the mutable center fields.
type CenterRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	District     string `json:"district" validate:"required,max=100"`
	Address      string `json:"address" validate:"omitempty,max=500"`
	Location     string `json:"location" validate:"required,max=100"`
	Landmark     string `json:"landmark" validate:"omitempty,max=100"`
	Pincode      string `json:"pincode" validate:"required,max=10"`
	Contact      string `json:"contact" validate:"required,min=7,max=20"`
	Email        string `json:"email" validate:"omitempty,email"`
	ClinicURL    string `json:"clinic_url" validate:"omitempty,url"`
	GoogleMapURL string `json:"google_map_url" validate:"omitempty,url"`
}

func (r CenterRequest) toInput() service.CenterInput {
	return service.CenterInput{
		Name:         r.Name,
		District:     r.District,
		Address:      r.Address,
		Location:     r.Location,
		Landmark:     r.Landmark,
		Pincode:      r.Pincode,
		Contact:      r.Contact,
		Email:        r.Email,
		ClinicURL:    r.ClinicURL,
		GoogleMapURL: r.GoogleMapURL,
	}
}

// List godoc
// @Summary List centers
// @Tags centers
// @Produce json
// @Success 200 {array} model.Center
// @Failure 500 {object} errors.ErrorResponse
// @Router /centers [get]
func (h *CenterHandler) List(c echo.Context) error {
	centers, err := h.centerService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, centers)
}

// Get godoc
// @Summary Get a center
// @Tags centers
// @Produce json
// @Param id path string true "Center ID"
// @Success 200 {object} model.Center
// @Failure 404 {object} errors.ErrorResponse
// @Router /centers/{id} [get]
func (h *CenterHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	center, err := h.centerService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, center)
}

// Create godoc
// @Summary Create a center
// @Tags centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CenterRequest true "Center data"
// @Success 201 {object} model.Center
// @Failure 400 {object} errors.ErrorResponse
// @Router /centers [post]
func (h *CenterHandler) Create(c echo.Context) error {
	var req CenterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	center, err := h.centerService.Create(c.Request().Context(), req.toInput(), actorID(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, center)
}

// Update godoc
// @Summary Update a center
// @Tags centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Center ID"
// @Param request body CenterRequest true "Center data"
// @Success 200 {object} model.Center
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /centers/{id} [put]
func (h *CenterHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req CenterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	center, err := h.centerService.Update(c.Request().Context(), id, req.toInput(), actorID(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, center)
}

// Delete godoc
// @Summary Delete a center
// @Tags centers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Center ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /centers/{id} [delete]
func (h *CenterHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.centerService.Delete(c.Request().Context(), id, actorID(c)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "center deleted successfully"})
}
