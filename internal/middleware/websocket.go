package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// The observer id set by EnsureObserverID must be present, and the board
// orientation is read from the flipped query parameter.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		if c.Locals("observerID") == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "observer ID is required",
			})
		}

		// Locals survive the upgrade, the query string is not read again.
		c.Locals("flipped", c.QueryBool("flipped"))
		return c.Next()
	}
}
