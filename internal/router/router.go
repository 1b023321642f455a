package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fitra-dev/jejak-api/internal/config"
	"github.com/fitra-dev/jejak-api/internal/handler"
	"github.com/fitra-dev/jejak-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler     *handler.AuthHandler
	ContentHandler  *handler.ContentHandler
	ActivityHandler *handler.ActivityHandler
	JWTMiddleware   fiber.Handler
	IssuerResolver  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	issuerResolver := deps.IssuerResolver
	if issuerResolver == nil {
		issuerResolver = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.ContentHandler != nil {
		// Mutations require an authenticated issuer so the trail stays
		// attributed.
		deps.ContentHandler.Register(api.Group("/content", jwtMiddleware, issuerResolver))
	}

	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(api.Group("/activity", jwtMiddleware))
	}
}
