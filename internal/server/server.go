// Package server assembles the HTTP application.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"productselector/internal/handlers"
	"productselector/internal/middleware"
)

const healthTimeout = 2 * time.Second

// RouteRegistrar is implemented by every resource handler.
type RouteRegistrar interface {
	RegisterRoutes(router fiber.Router)
}

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

// Options tunes the app. The zero value disables rate limiting and the
// database check of /health.
type Options struct {
	Ping      PingFunc
	RateLimit float64 // requests per second, 0 disables
	RateBurst int
}

// New builds the Fiber app with error rendering, panic recovery, request
// logging, a health endpoint and the given resource routes.
func New(log *zap.Logger, opts Options, registrars ...RouteRegistrar) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "productselector",
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New())
	if opts.RateLimit > 0 {
		app.Use(middleware.RateLimit(opts.RateLimit, max(opts.RateBurst, 1)))
	}

	app.Get("/health", healthHandler(opts.Ping))

	for _, r := range registrars {
		r.RegisterRoutes(app)
	}
	return app
}

func healthHandler(ping PingFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, database := fiber.StatusOK, "up"
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				status, database = fiber.StatusServiceUnavailable, "down"
			}
		}

		health := "healthy"
		if status != fiber.StatusOK {
			health = "unhealthy"
		}
		return c.Status(status).JSON(fiber.Map{
			"status":   health,
			"database": database,
			"time":     time.Now().Format(time.RFC3339),
		})
	}
}
