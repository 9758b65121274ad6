package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const PlayerIDHeader = "X-Player-ID"

// EnsurePlayerID stores the caller's player id in c.Locals("playerID").
// Clients that do not send one are given a fresh id, echoed back in the
// X-Player-ID response header so they can reuse it.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if playerID is already set
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		// Check header first
		playerID := c.Get(PlayerIDHeader)
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			playerID = uuid.NewString()
			c.Set(PlayerIDHeader, playerID)
		}

		// Store in context for this request
		c.Locals("playerID", playerID)
		return c.Next()
	}
}
