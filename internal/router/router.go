package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"carebook/internal/auth"
	"carebook/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	centerHandler *handler.CenterHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/appointments/request", appointmentHandler.CreatePending)
	api.GET("/centers", centerHandler.List)
	api.GET("/centers/:id", centerHandler.Get)

	// Staff routes (require JWT authentication). Tokens are validated
	// against the signing key and the blacklist.
	staff := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				return nil, err
			}
			if claims.ID != "" {
				blacklisted, _ := tokenStore.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
				if blacklisted {
					return nil, echo.ErrUnauthorized
				}
			}
			return claims, nil
		},
	}))

	// Appointment routes
	staff.GET("/appointments", appointmentHandler.List)
	staff.GET("/appointments/:id", appointmentHandler.Get)
	staff.POST("/appointments", appointmentHandler.Schedule)
	staff.POST("/appointments/:id/confirm", appointmentHandler.Confirm)
	staff.POST("/appointments/:id/reschedule", appointmentHandler.Reschedule)
	staff.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
	staff.POST("/appointments/:id/reject", appointmentHandler.Reject)
	staff.POST("/appointments/:id/complete", appointmentHandler.Complete)
	staff.DELETE("/appointments/:id", appointmentHandler.Delete)

	// Center routes
	staff.POST("/centers", centerHandler.Create)
	staff.PUT("/centers/:id", centerHandler.Update)
	staff.DELETE("/centers/:id", centerHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
