// handlers/guild_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fishing-game-backend/middleware"
	"fishing-game-backend/services"
)

func SetupGuildRoutes(app *fiber.App, guilds *services.GuildService) {
	secured := app.Group("/guilds", middleware.UserContextMiddleware())

	secured.Post("/", func(c *fiber.Ctx) error {
		var in services.CreateGuildInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		guild, err := guilds.Create(c.Context(), middleware.UserID(c), middleware.Username(c), in)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"guild": guild})
	})

	secured.Get("/search", func(c *fiber.Ctx) error {
		list, err := guilds.Search(c.Context(), c.Query("q"), c.QueryInt("limit"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"guilds": list})
	})

	secured.Get("/me", func(c *fiber.Ctx) error {
		guild, member, err := guilds.Membership(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"guild": guild, "membership": member})
	})

	secured.Get("/:id", func(c *fiber.Ctx) error {
		guild, members, err := guilds.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"guild": guild, "members": members})
	})

	secured.Post("/:id/join", func(c *fiber.Ctx) error {
		var body struct {
			Message string `json:"message"`
		}
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		result, err := guilds.Join(c.Context(), c.Params("id"), middleware.UserID(c), middleware.Username(c), body.Message)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(result)
	})

	secured.Get("/:id/applications", func(c *fiber.Ctx) error {
		apps, err := guilds.Applications(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"applications": apps})
	})

	secured.Post("/:id/applications/:appID/accept", func(c *fiber.Ctx) error {
		member, err := guilds.AcceptApplication(c.Context(), c.Params("id"), c.Params("appID"), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"new_member": member})
	})

	secured.Post("/:id/applications/:appID/reject", func(c *fiber.Ctx) error {
		if err := guilds.RejectApplication(c.Context(), c.Params("id"), c.Params("appID"), middleware.UserID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Post("/:id/leave", func(c *fiber.Ctx) error {
		if err := guilds.Leave(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Post("/:id/kick", func(c *fiber.Ctx) error {
		var body struct {
			TargetUserID string `json:"target_user_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := guilds.Kick(c.Context(), c.Params("id"), middleware.UserID(c), body.TargetUserID); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Post("/:id/promote", func(c *fiber.Ctx) error {
		var body struct {
			TargetUserID string `json:"target_user_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		newRank, err := guilds.Promote(c.Context(), c.Params("id"), middleware.UserID(c), body.TargetUserID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"new_rank": newRank})
	})

	secured.Post("/:id/transfer-leadership", func(c *fiber.Ctx) error {
		var body struct {
			NewLeaderID string `json:"new_leader_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := guilds.TransferLeadership(c.Context(), c.Params("id"), middleware.UserID(c), body.NewLeaderID); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Post("/:id/contribute", func(c *fiber.Ctx) error {
		var body struct {
			Currency string `json:"currency"`
			Amount   int64  `json:"amount"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		result, err := guilds.Contribute(c.Context(), c.Params("id"), middleware.UserID(c), body.Currency, body.Amount)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(result)
	})

	secured.Get("/:id/challenges", func(c *fiber.Ctx) error {
		list, err := guilds.Challenges(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"challenges": list})
	})

	secured.Post("/challenges", func(c *fiber.Ctx) error {
		var in services.ChallengeInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		challenge, err := guilds.CreateChallenge(c.Context(), middleware.UserID(c), in)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"challenge": challenge})
	})

	secured.Post("/challenges/:id/accept", func(c *fiber.Ctx) error {
		if err := guilds.AcceptChallenge(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Post("/challenges/:id/decline", func(c *fiber.Ctx) error {
		if err := guilds.DeclineChallenge(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Post("/challenges/:id/progress", func(c *fiber.Ctx) error {
		var body struct {
			GuildID string `json:"guild_id"`
			Delta   int64  `json:"delta"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		challenge, err := guilds.UpdateChallengeProgress(c.Context(), c.Params("id"), body.GuildID, body.Delta)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"challenge": challenge})
	})
}
