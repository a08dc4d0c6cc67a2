// handlers/respond.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fishing-game-backend/services"
)

// statusFor maps a domain failure kind to an HTTP status.
func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindConflict:
		return fiber.StatusConflict
	case services.KindPermissionDenied:
		return fiber.StatusForbidden
	case services.KindInvalidState, services.KindInsufficientFunds, services.KindValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the error response. Unclassified errors surface as 500 with a
// generic message so internals never leak to players.
func fail(c *fiber.Ctx, err error) error {
	kind := services.KindOf(err)
	if kind == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.Status(statusFor(kind)).JSON(fiber.Map{"error": err.Error()})
}
