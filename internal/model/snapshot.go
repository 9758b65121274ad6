package model

import (
	"time"

	"github.com/benbeisheim/roomchess-backend/internal/chess"
)

// Snapshot is the persisted view of a room's last known position.
type Snapshot struct {
	RoomID    int         `json:"roomId"`
	Encoding  string      `json:"encoding"`
	Turn      chess.Color `json:"turn"`
	Status    Status      `json:"status"`
	Winner    chess.Color `json:"winner,omitempty"`
	LastMove  *SimpleMove `json:"lastMove"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type SnapshotStore interface {
	Save(s Snapshot) error
}
