package model

import "github.com/benbeisheim/roomchess-backend/internal/chess"

type SimpleMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Relay payloads, one per ws message type.

type PlayerEvent struct {
	PlayerID string      `json:"playerId"`
	Players  int         `json:"players"`
	Color    chess.Color `json:"color"`
	RoomID   int         `json:"roomId"`
}

type MoveEvent struct {
	From   string `json:"from"`
	To     string `json:"to"`
	RoomID int    `json:"roomId"`
}

type MovesEvent struct {
	Square  string   `json:"square"`
	Targets []string `json:"targets"`
}

type PositionEvent struct {
	RoomID   int         `json:"roomId"`
	Encoding string      `json:"encoding"`
	Turn     chess.Color `json:"turn"`
}

type PieceCountEvent struct {
	RoomID int   `json:"roomId"`
	Tally  Tally `json:"tally"`
}

type GameOverEvent struct {
	RoomID int         `json:"roomId"`
	Winner chess.Color `json:"winner"`
}

type RoomEvent struct {
	RoomID int `json:"roomId"`
}
