// handlers/social_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fishing-game-backend/middleware"
	"fishing-game-backend/services"
)

func SetupSocialRoutes(app *fiber.App, social *services.SocialService) {
	secured := app.Group("/social", middleware.UserContextMiddleware())

	secured.Post("/friends/request", func(c *fiber.Ctx) error {
		var body struct {
			ToUserID string `json:"to_user_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		req, err := social.SendFriendRequest(c.Context(), middleware.UserID(c), middleware.Username(c), body.ToUserID)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"request": req})
	})

	secured.Get("/friends/requests", func(c *fiber.Ctx) error {
		incoming, err := social.FriendRequests(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"incoming": incoming})
	})

	secured.Post("/friends/requests/:id/accept", func(c *fiber.Ctx) error {
		friendship, err := social.AcceptFriendRequest(c.Context(), c.Params("id"), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"friendship": friendship})
	})

	secured.Post("/friends/requests/:id/reject", func(c *fiber.Ctx) error {
		if err := social.RejectFriendRequest(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Get("/friends", func(c *fiber.Ctx) error {
		friends, err := social.Friends(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"friends": friends, "count": len(friends)})
	})

	secured.Delete("/friends/:friendID", func(c *fiber.Ctx) error {
		if err := social.RemoveFriend(c.Context(), middleware.UserID(c), c.Params("friendID")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Get("/gifts/types", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"gift_types": social.GiftTypes()})
	})

	secured.Post("/gifts/send", func(c *fiber.Ctx) error {
		var body struct {
			ToUserID string `json:"to_user_id"`
			GiftType string `json:"gift_type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		gift, err := social.SendGift(c.Context(), middleware.UserID(c), middleware.Username(c), body.ToUserID, body.GiftType)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"gift": gift})
	})

	secured.Get("/gifts/inbox", func(c *fiber.Ctx) error {
		gifts, err := social.Inbox(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"gifts": gifts})
	})

	secured.Post("/gifts/:id/claim", func(c *fiber.Ctx) error {
		reward, err := social.ClaimGift(c.Context(), c.Params("id"), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"reward": reward})
	})

	secured.Post("/gifts/claim-all", func(c *fiber.Ctx) error {
		claimed, err := social.ClaimAllGifts(c.Context(), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"claimed_count": claimed})
	})

	secured.Get("/search", func(c *fiber.Ctx) error {
		players, err := social.SearchPlayers(c.Context(), c.Query("q"), c.QueryInt("limit"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"players": players})
	})

	secured.Get("/activity", func(c *fiber.Ctx) error {
		feed, err := social.ActivityFeed(c.Context(), c.QueryInt("limit"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"activity": feed})
	})

	secured.Post("/activity", func(c *fiber.Ctx) error {
		var body struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		activity, err := social.PostActivity(c.Context(), middleware.UserID(c), middleware.Username(c), body.Type, body.Message)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"activity": activity})
	})

	secured.Post("/activity/:id/like", func(c *fiber.Ctx) error {
		activity, err := social.LikeActivity(c.Context(), c.Params("id"), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"activity": activity})
	})

	secured.Get("/notifications", func(c *fiber.Ctx) error {
		list, err := social.Notifications(c.Context(), middleware.UserID(c), c.QueryInt("limit"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"notifications": list})
	})

	secured.Post("/notifications/:id/read", func(c *fiber.Ctx) error {
		if err := social.MarkNotificationRead(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Post("/notifications/read-all", func(c *fiber.Ctx) error {
		if err := social.MarkAllNotificationsRead(c.Context(), middleware.UserID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Delete("/notifications", func(c *fiber.Ctx) error {
		if err := social.ClearNotifications(c.Context(), middleware.UserID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})
}
