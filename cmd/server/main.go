package main

import (
	"log"
	"net/http"

	_ "carebook/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"carebook/internal/auth"
	"carebook/internal/cache"
	"carebook/internal/config"
	"carebook/internal/db"
	"carebook/internal/handler"
	"carebook/internal/model"
	"carebook/internal/notify"
	"carebook/internal/repository"
	"carebook/internal/router"
	"carebook/internal/service"
)

// @title CareBook API
// @version 1.0
// @description Appointment booking backend: public requests, staff review and lifecycle transitions, email notifications.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Center{},
		&model.Appointment{},
		&model.NotificationLog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	notifier := notify.NewAMQPNotifier(cfg.AMQPURL)
	defer notifier.Close()

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository(gormDB)
	centerRepo := repository.NewCenterRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	appointmentService := service.NewAppointmentService(appointmentRepo, notifier)
	centerService := service.NewCenterService(centerRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	centerHandler := handler.NewCenterHandler(centerService)

	// Register routes
	router.Register(
		e,
		jwtService,
		tokenStore,
		authHandler,
		appointmentHandler,
		centerHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
