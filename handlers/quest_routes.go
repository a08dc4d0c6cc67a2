// handlers/quest_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fishing-game-backend/middleware"
	"fishing-game-backend/models"
	"fishing-game-backend/services"
)

func SetupQuestRoutes(app *fiber.App, quests *services.QuestService) {
	secured := app.Group("/quests", middleware.UserContextMiddleware())

	secured.Get("/daily", func(c *fiber.Ctx) error {
		list, err := quests.Daily(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"quests": list})
	})

	secured.Get("/weekly", func(c *fiber.Ctx) error {
		list, err := quests.Weekly(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"quests": list})
	})

	secured.Post("/progress", func(c *fiber.Ctx) error {
		var ev models.CatchEvent
		if err := c.BodyParser(&ev); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		updates, err := quests.ReportProgress(c.Context(), middleware.UserID(c), ev)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"updates": updates})
	})

	secured.Post("/:id/claim", func(c *fiber.Ctx) error {
		rewards, err := quests.Claim(c.Context(), middleware.UserID(c), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"rewards": rewards})
	})

	secured.Get("/story", func(c *fiber.Ctx) error {
		progress, err := quests.Story(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(progress)
	})

	secured.Post("/story/:id/start", func(c *fiber.Ctx) error {
		quest, err := quests.StartStory(c.Context(), middleware.UserID(c), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"quest": quest})
	})

	secured.Get("/achievements", func(c *fiber.Ctx) error {
		list, err := quests.Achievements(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"achievements": list})
	})

	secured.Post("/achievements/check", func(c *fiber.Ctx) error {
		unlocked, err := quests.CheckAchievements(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"unlocked": unlocked})
	})
}
