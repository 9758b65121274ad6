// service/room_manager.go
package service

import (
	"errors"

	"github.com/benbeisheim/roomchess-backend/internal/model"
	"github.com/rs/zerolog"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrNoOpenRoom   = errors.New("no open room")
)

// RoomManager owns a fixed table of numbered rooms, 1..size.
type RoomManager struct {
	rooms []*model.Room
	log   zerolog.Logger
}

type RoomSummary struct {
	RoomID  int          `json:"roomId"`
	Players int          `json:"players"`
	Status  model.Status `json:"status"`
}

func NewRoomManager(size int, store model.SnapshotStore, log zerolog.Logger) *RoomManager {
	rm := &RoomManager{
		rooms: make([]*model.Room, size),
		log:   log,
	}
	for i := range rm.rooms {
		rm.rooms[i] = model.NewRoom(i+1, store, log)
	}
	log.Info().Int("rooms", size).Msg("room table ready")
	return rm
}

func (rm *RoomManager) Room(roomID int) (*model.Room, error) {
	if roomID < 1 || roomID > len(rm.rooms) {
		return nil, ErrRoomNotFound
	}
	return rm.rooms[roomID-1], nil
}

// OpenRoom picks a room to join: one where a player is already waiting for
// an opponent if there is one, otherwise the first empty room.
func (rm *RoomManager) OpenRoom() (int, error) {
	empty := 0
	for _, room := range rm.rooms {
		if room.Status() != model.StatusWaiting {
			continue
		}
		switch room.PlayerCount() {
		case 1:
			return room.ID, nil
		case 0:
			if empty == 0 {
				empty = room.ID
			}
		}
	}
	if empty == 0 {
		return 0, ErrNoOpenRoom
	}
	return empty, nil
}

func (rm *RoomManager) Rooms() []RoomSummary {
	summaries := make([]RoomSummary, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		summaries = append(summaries, RoomSummary{
			RoomID:  room.ID,
			Players: room.PlayerCount(),
			Status:  room.Status(),
		})
	}
	return summaries
}
