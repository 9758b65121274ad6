package middleware

import (
	"strconv"

	"github.com/benbeisheim/roomchess-backend/internal/setup"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It also checks the room number and the optional starting arrangement before allowing the upgrade.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// First, check if this is a WebSocket upgrade request
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		roomID, err := strconv.Atoi(c.Params("roomId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "room number is required",
			})
		}

		arrangement := setup.Arrangement(c.Query("setup"))
		if err := setup.Validate(arrangement); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		// Ensure we have a player ID (this would have been set by our EnsurePlayerID middleware)
		playerID := c.Locals("playerID")
		if playerID == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		// Store these in locals so they're available after the WebSocket upgrade
		c.Locals("wsRoomID", roomID)
		c.Locals("wsSetup", arrangement)

		// Allow the upgrade to proceed
		return c.Next()
	}
}
