package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"spotbook/docs"
	"spotbook/internal/access"
	"spotbook/internal/auth"
	"spotbook/internal/cache"
	"spotbook/internal/config"
	"spotbook/internal/db"
	"spotbook/internal/handler"
	"spotbook/internal/logger"
	"spotbook/internal/repository"
	"spotbook/internal/router"
	"spotbook/internal/service"
)

// @title Spotbook API
// @version 1.0
// @description Vacation rental backend: spots, images, reviews and bookings.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// prices go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.DBDriver, cfg.ResetDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, log)
	defer cacheClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	spotRepo := repository.NewSpotRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)
	imageRepo := repository.NewImageRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTExpiresIn)*time.Second)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	spotService := service.NewSpotService(spotRepo, cacheClient)
	reviewService := service.NewReviewService(reviewRepo, cacheClient)
	bookingService := service.NewBookingService(bookingRepo, time.Now)
	imageService := service.NewImageService(imageRepo, cacheClient)

	// Initialize handlers
	loaders := access.Loaders{Spots: spotRepo, Reviews: reviewRepo, Bookings: bookingRepo, Images: imageRepo}
	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService, jwtService.ExpiresIn(), cfg.IsProduction()),
		Spots:    handler.NewSpotHandler(spotService, imageService, loaders),
		Reviews:  handler.NewReviewHandler(reviewService, imageService, loaders),
		Bookings: handler.NewBookingHandler(bookingService, loaders),
		Images:   handler.NewImageHandler(imageService, loaders),
	}
	restorer := auth.NewRestorer(jwtService, userService, tokenStore, cfg.IsProduction(), log)

	e := echo.New()
	router.Register(e, cfg, log, restorer, handlers, cacheClient)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	srv := &http.Server{
		Addr: ":" + cfg.ServerPort,
		Handler: cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{echo.HeaderContentType, echo.HeaderXRequestID},
			AllowCredentials: true,
		}).Handler(e),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "driver": cfg.DBDriver, "env": cfg.Environment}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}
