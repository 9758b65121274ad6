package model

import "errors"

var (
	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyJoined = errors.New("player already in room")
	ErrNotInRoom     = errors.New("player not in room")
	ErrNotPlaying    = errors.New("game not in progress")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrIllegalMove   = errors.New("illegal move")
)
