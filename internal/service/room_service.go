package service

import (
	"fmt"
	"strconv"

	"github.com/benbeisheim/roomchess-backend/internal/chess"
	"github.com/benbeisheim/roomchess-backend/internal/model"
	"github.com/benbeisheim/roomchess-backend/internal/setup"
)

// SnapshotReader is the read side of the snapshot store.
type SnapshotReader interface {
	Load(roomID int) (model.Snapshot, bool, error)
	Delete(roomID int) error
}

type RoomService struct {
	roomManager *RoomManager
	snapshots   SnapshotReader
}

func NewRoomService(roomManager *RoomManager, snapshots SnapshotReader) *RoomService {
	return &RoomService{
		roomManager: roomManager,
		snapshots:   snapshots,
	}
}

// ParseRoomID converts a path parameter to a room number.
func (rs *RoomService) ParseRoomID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrRoomNotFound, s)
	}
	if _, err := rs.roomManager.Room(id); err != nil {
		return 0, err
	}
	return id, nil
}

func (rs *RoomService) ValidateArrangement(a setup.Arrangement) error {
	return setup.Validate(a)
}

func (rs *RoomService) JoinRoom(roomID int, player model.Player) (chess.Color, error) {
	room, err := rs.roomManager.Room(roomID)
	if err != nil {
		return "", err
	}
	return room.Join(player)
}

func (rs *RoomService) LeaveRoom(roomID int, playerID string) {
	if room, err := rs.roomManager.Room(roomID); err == nil {
		room.Leave(playerID)
	}
}

func (rs *RoomService) HandleMove(roomID int, playerID string, move model.SimpleMove) error {
	room, err := rs.roomManager.Room(roomID)
	if err != nil {
		return err
	}
	return room.Move(playerID, move.From, move.To)
}

func (rs *RoomService) Moves(roomID int, playerID, square string) ([]string, error) {
	room, err := rs.roomManager.Room(roomID)
	if err != nil {
		return nil, err
	}
	return room.Moves(playerID, square)
}

func (rs *RoomService) OpenRoom() (int, error) {
	return rs.roomManager.OpenRoom()
}

func (rs *RoomService) Rooms() []RoomSummary {
	return rs.roomManager.Rooms()
}

// GetRoomState returns the live state of an active room, or the last
// persisted snapshot of an idle one.
func (rs *RoomService) GetRoomState(roomID int) (interface{}, error) {
	room, err := rs.roomManager.Room(roomID)
	if err != nil {
		return nil, err
	}
	state := room.State()
	if state.Status != model.StatusWaiting || len(state.Players) > 0 || rs.snapshots == nil {
		return state, nil
	}

	snap, ok, err := rs.snapshots.Load(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if !ok {
		return state, nil
	}
	return snap, nil
}

func (rs *RoomService) DeleteSnapshot(roomID int) error {
	if _, err := rs.roomManager.Room(roomID); err != nil {
		return err
	}
	if rs.snapshots == nil {
		return nil
	}
	return rs.snapshots.Delete(roomID)
}
