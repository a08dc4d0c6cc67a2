// handlers/daily_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fishing-game-backend/middleware"
	"fishing-game-backend/services"
)

func SetupDailyRoutes(app *fiber.App, daily *services.DailyRewardService) {
	secured := app.Group("/daily", middleware.UserContextMiddleware())

	secured.Get("/status", func(c *fiber.Ctx) error {
		status, err := daily.Status(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(status)
	})

	secured.Post("/claim", func(c *fiber.Ctx) error {
		result, err := daily.Claim(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(result)
	})
}
