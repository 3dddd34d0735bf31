package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// GameLookup reports an error for game ids that are not registered.
type GameLookup interface {
	Exists(gameID string) error
}

// RequireGame rejects requests whose :gameId does not name a running game.
func RequireGame(games GameLookup, notFound error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		if err := games.Exists(gameID); err != nil {
			if errors.Is(err, notFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return err
		}

		c.Locals("gameID", gameID)
		return c.Next()
	}
}
