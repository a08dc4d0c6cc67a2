// handlers/season_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fishing-game-backend/middleware"
	"fishing-game-backend/services"
)

func SetupSeasonRoutes(app *fiber.App, season *services.SeasonPassService) {
	secured := app.Group("/season", middleware.UserContextMiddleware())

	secured.Get("/status", func(c *fiber.Ctx) error {
		status, err := season.Status(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(status)
	})

	secured.Post("/xp", func(c *fiber.Ctx) error {
		var body struct {
			Amount int64 `json:"amount"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		result, err := season.AddXP(c.Context(), middleware.UserID(c), body.Amount)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(result)
	})

	secured.Post("/claim", func(c *fiber.Ctx) error {
		var body struct {
			Level   int  `json:"level"`
			Premium bool `json:"premium"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		reward, err := season.ClaimTier(c.Context(), middleware.UserID(c), body.Level, body.Premium)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"reward": reward})
	})

	secured.Post("/premium", func(c *fiber.Ctx) error {
		if err := season.PurchasePremium(c.Context(), middleware.UserID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})
}
