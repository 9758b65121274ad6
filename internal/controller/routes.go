package controller

import (
	"strings"

	"github.com/benbeisheim/roomchess-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

// Register wires middleware and every REST and WebSocket route onto app.
func Register(app *fiber.App, rc *RoomController, wsc *WebSocketController, origins []string, log zerolog.Logger) {
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		ExposeHeaders:    middleware.PlayerIDHeader,
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(log))

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/room/:roomId", middleware.WebSocketUpgrade(), websocket.New(wsc.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	api.Get("/rooms", rc.ListRooms)
	api.Post("/rooms/open", rc.OpenRoom)
	api.Post("/setup/validate", rc.ValidateSetup)

	roomRoutes := api.Group("/room")
	roomRoutes.Get("/:roomId", rc.GetRoomState)
	roomRoutes.Get("/:roomId/moves/:square", rc.GetMoves)
	roomRoutes.Delete("/:roomId/snapshot", rc.DeleteSnapshot)
}
