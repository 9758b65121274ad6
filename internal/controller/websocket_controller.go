package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/roomchess-backend/internal/model"
	"github.com/benbeisheim/roomchess-backend/internal/service"
	"github.com/benbeisheim/roomchess-backend/internal/setup"
	"github.com/benbeisheim/roomchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

type WebSocketController struct {
	roomService *service.RoomService
	log         zerolog.Logger
}

func NewWebSocketController(roomService *service.RoomService, log zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		roomService: roomService,
		log:         log,
	}
}

// lockedConn serialises writes; the room and the read loop both write to
// the same connection.
type lockedConn struct {
	mu   sync.Mutex
	conn model.Conn
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

func (lc *lockedConn) Close() error {
	return lc.conn.Close()
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	// Extract room, player and arrangement from the upgrade context
	roomID := c.Locals("wsRoomID").(int)
	playerID := c.Locals("playerID").(string)
	arrangement, _ := c.Locals("wsSetup").(setup.Arrangement)
	log := wsc.log.With().Int("room", roomID).Str("player", playerID).Logger()

	conn := &lockedConn{conn: c}
	if _, err := wsc.roomService.JoinRoom(roomID, model.Player{ID: playerID, Conn: conn, Arrangement: arrangement}); err != nil {
		log.Warn().Err(err).Msg("failed to join room")
		wsc.sendError(conn, err.Error())
		c.Close()
		return
	}

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("read error")
			break
		}

		if messageType != websocket.TextMessage {
			continue
		}
		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug().Err(err).Msg("parse error")
			wsc.sendError(conn, "malformed message")
			continue
		}
		if err := wsc.handleMessage(conn, roomID, playerID, msg); err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("handle error")
			wsc.sendError(conn, err.Error())
		}
	}

	// Clean up when connection closes
	wsc.roomService.LeaveRoom(roomID, playerID)
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(conn model.Conn, roomID int, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.SimpleMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.roomService.HandleMove(roomID, playerID, move)

	case ws.MessageTypeMoves:
		var req struct {
			Square string `json:"square"`
		}
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		targets, err := wsc.roomService.Moves(roomID, playerID, req.Square)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeMoves, model.MovesEvent{Square: req.Square, Targets: targets})
		if err != nil {
			return err
		}
		return conn.WriteJSON(reply)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(conn model.Conn, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, map[string]string{"error": errorMsg})
	if err != nil {
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		wsc.log.Debug().Err(err).Msg("failed to send error")
	}
}
