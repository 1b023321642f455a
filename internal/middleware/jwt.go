package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fitra-dev/jejak-api/internal/utils"
)

// JWTProtected returns a middleware that validates JWT bearer tokens and
// exposes the authenticated user id to downstream handlers.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		userID, ok := parseUserID(claims["sub"])
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid subject claim")
		}

		c.Locals("user_id", userID)

		return c.Next()
	}
}

func parseUserID(claim interface{}) (uint, bool) {
	switch value := claim.(type) {
	case float64:
		if value <= 0 {
			return 0, false
		}
		return uint(value), true
	case string:
		var id uint
		if _, err := fmt.Sscanf(value, "%d", &id); err != nil || id == 0 {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
