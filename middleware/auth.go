// middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// UserContextMiddleware extracts the player identity forwarded by the
// gateway and attaches it to the request context. Handlers read it via
// c.Locals("user_id").
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			log.Warn().Str("path", c.Path()).Msg("missing X-User-ID on secured route")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID, request must come through the gateway",
			})
		}

		username := c.Get("X-Username")

		c.Locals("user_id", userID)
		c.Locals("username", username)
		return c.Next()
	}
}

// UserID returns the authenticated player id for the request.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// Username returns the forwarded display name, which may be empty.
func Username(c *fiber.Ctx) string {
	name, _ := c.Locals("username").(string)
	return strings.TrimSpace(name)
}
