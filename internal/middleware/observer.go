package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EnsureObserverID stores the caller's observer id in the request locals,
// taken from the X-Observer-ID header or the observerId query parameter and
// generated when neither is present.
func EnsureObserverID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("observerID") != nil {
			return c.Next()
		}

		observerID := c.Get("X-Observer-ID")
		if observerID == "" {
			observerID = c.Query("observerId")
		}
		if observerID == "" {
			observerID = uuid.New().String()
		}

		c.Locals("observerID", observerID)
		c.Set("X-Observer-ID", observerID)
		return c.Next()
	}
}
