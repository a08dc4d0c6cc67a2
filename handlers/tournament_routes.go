// handlers/tournament_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"fishing-game-backend/middleware"
	"fishing-game-backend/models"
	"fishing-game-backend/services"
)

func SetupTournamentRoutes(app *fiber.App, tournaments *services.TournamentService) {
	secured := app.Group("/tournaments", middleware.UserContextMiddleware())

	secured.Get("/active", func(c *fiber.Ctx) error {
		// Ensure today's boards exist even if the scheduler has not fired
		// yet; creation is idempotent per day.
		if err := tournaments.CreateDailyTournaments(c.Context()); err != nil {
			log.Warn().Err(err).Msg("failed to ensure daily tournaments")
		}
		list, err := tournaments.Active(c.Context())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"tournaments": list})
	})

	secured.Get("/:id", func(c *fiber.Ctx) error {
		t, err := tournaments.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(t)
	})

	secured.Get("/:id/leaderboard", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		board, err := tournaments.Leaderboard(c.Context(), c.Params("id"), limit)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"leaderboard": board})
	})

	secured.Get("/:id/entry", func(c *fiber.Ctx) error {
		entry, err := tournaments.Entry(c.Context(), c.Params("id"), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(entry)
	})

	secured.Post("/:id/join", func(c *fiber.Ctx) error {
		entry, err := tournaments.Join(c.Context(), c.Params("id"), middleware.UserID(c), middleware.Username(c))
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry": entry})
	})

	secured.Post("/:id/score", func(c *fiber.Ctx) error {
		var upd models.ScoreUpdate
		if err := c.BodyParser(&upd); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		entry, err := tournaments.SubmitScore(c.Context(), c.Params("id"), middleware.UserID(c), upd)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"entry": entry})
	})

	secured.Post("/:id/finalize", func(c *fiber.Ctx) error {
		results, err := tournaments.Finalize(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"results_count": len(results)})
	})

	secured.Get("/:id/results", func(c *fiber.Ctx) error {
		result, err := tournaments.Results(c.Context(), c.Params("id"), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"result": result})
	})
}
