package router

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"spotbook/internal/auth"
	"spotbook/internal/config"
	apperrors "spotbook/internal/errors"
	"spotbook/internal/handler"
	"spotbook/internal/logger"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth     *handler.AuthHandler
	Spots    *handler.SpotHandler
	Reviews  *handler.ReviewHandler
	Bookings *handler.BookingHandler
	Images   *handler.ImageHandler
}

// Pinger reports whether a backing service answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Register wires routes and middleware. Every /api request first passes
// the session restorer, so handlers always see the viewer or nil.
func Register(e *echo.Echo, cfg *config.Config, log *logrus.Logger, restorer *auth.Restorer, h Handlers, deps ...Pinger) {
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.Handler(log)
	e.Validator = handler.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		for _, dep := range deps {
			if err := dep.Ping(c.Request().Context()); err != nil {
				// the cache is optional, report but stay up
				return c.String(http.StatusOK, "degraded")
			}
		}
		return c.String(http.StatusOK, "ok")
	})

	if cfg.SwaggerHost != "" || !cfg.IsProduction() {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api", restorer.Middleware()...)

	users := api.Group("/users")
	users.GET("", h.Auth.Current)
	users.DELETE("", h.Auth.Logout)
	users.POST("/login", h.Auth.Login)
	users.POST("/signup", h.Auth.Signup)

	spots := api.Group("/spots")
	spots.GET("", h.Spots.List)
	spots.POST("", h.Spots.Create)
	spots.GET("/myspots", h.Spots.ListMine)
	spots.GET("/:id", h.Spots.Get)
	spots.PUT("/:id", h.Spots.Update)
	spots.DELETE("/:id", h.Spots.Delete)
	spots.POST("/:id/images", h.Spots.AddImage)
	spots.GET("/:id/reviews", h.Reviews.ListBySpot)
	spots.POST("/:id/reviews", h.Reviews.Create)
	spots.GET("/:id/bookings", h.Bookings.ListForSpot)
	spots.POST("/:id/bookings", h.Bookings.Create)

	reviews := api.Group("/reviews")
	reviews.GET("/current", h.Reviews.ListMine)
	reviews.PUT("/:id", h.Reviews.Update)
	reviews.DELETE("/:id", h.Reviews.Delete)
	reviews.POST("/:id/images", h.Reviews.AddImage)

	bookings := api.Group("/bookings")
	bookings.GET("/current", h.Bookings.ListMine)
	bookings.PUT("/:id", h.Bookings.Update)
	bookings.DELETE("/:id", h.Bookings.Delete)

	api.DELETE("/spot-images/:id", h.Images.DeleteSpotImage)
	api.DELETE("/review-images/:id", h.Images.DeleteReviewImage)
}
