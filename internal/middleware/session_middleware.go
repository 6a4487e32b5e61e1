package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionUserKey is the session entry holding the authenticated user's ID.
const SessionUserKey = "user_id"

// SessionRequired is a Fiber middleware that rejects requests without an
// authenticated session and exposes the user ID to downstream handlers via
// c.Locals.
func SessionRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not load session",
			})
		}

		userID, ok := sess.Get(SessionUserKey).(string)
		if !ok || userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Please log in to continue",
			})
		}

		c.Locals(SessionUserKey, userID)
		return c.Next()
	}
}
