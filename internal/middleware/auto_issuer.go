package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fitra-dev/jejak-api/internal/activitylog"
	"github.com/fitra-dev/jejak-api/internal/repository"
)

// AutoIssuer resolves the authenticated user and stores it on the request
// context, where the logging engine picks it up for issuer attribution.
// Requests without a resolvable identity carry no issuer, so anonymous
// actions are logged without one rather than with another request's actor.
func AutoIssuer(users repository.UserRepository, logger zerolog.Logger) fiber.Handler {
	log := logger.With().Str("component", "auto_issuer").Logger()

	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals("user_id").(uint); ok && id > 0 {
			user, err := users.Get(c.UserContext(), id)
			if err != nil {
				log.Warn().Err(err).Uint("user_id", id).Msg("failed to load issuer")
			} else {
				c.SetUserContext(activitylog.WithIssuer(c.UserContext(), user))
			}
		}

		return c.Next()
	}
}
