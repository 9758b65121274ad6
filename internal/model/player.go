package model

import (
	"github.com/benbeisheim/roomchess-backend/internal/chess"
	"github.com/benbeisheim/roomchess-backend/internal/setup"
)

// Conn is the part of a websocket connection a room writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Player struct {
	ID          string
	Color       chess.Color
	Conn        Conn
	Arrangement setup.Arrangement
}

type ClientPlayer struct {
	ID    string      `json:"id"`
	Color chess.Color `json:"color"`
}
