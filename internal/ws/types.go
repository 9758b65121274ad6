package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages relayed through a room
type MessageType string

const (
	MessageTypePlayer       MessageType = "player"
	MessageTypeFull         MessageType = "full"
	MessageTypePlay         MessageType = "play"
	MessageTypeMove         MessageType = "move"
	MessageTypeMoves        MessageType = "moves"
	MessageTypePosition     MessageType = "position"
	MessageTypePieceCount   MessageType = "pieceCount"
	MessageTypeGameOver     MessageType = "gameOver"
	MessageTypeDisconnected MessageType = "disconnected"
	MessageTypeError        MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage marshals payload into a Message of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
