package model

import "github.com/benbeisheim/roomchess-backend/internal/chess"

var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
	chess.King:   0,
}

type SideTally struct {
	Counts map[chess.PieceType]int `json:"counts"`
	Points int                     `json:"points"`
}

// Tally is the material left on the board for each side.
type Tally struct {
	White SideTally `json:"white"`
	Black SideTally `json:"black"`
}

func NewTally(board chess.Board) Tally {
	t := Tally{
		White: SideTally{Counts: make(map[chess.PieceType]int)},
		Black: SideTally{Counts: make(map[chess.PieceType]int)},
	}
	for _, rank := range board {
		for _, piece := range rank {
			if piece.IsEmpty() {
				continue
			}
			side := &t.White
			if piece.Color == chess.Black {
				side = &t.Black
			}
			side.Counts[piece.Type]++
			side.Points += pieceValues[piece.Type]
		}
	}
	return t
}

// Differential is color's points minus its opponent's.
func (t Tally) Differential(color chess.Color) int {
	if color == chess.Black {
		return t.Black.Points - t.White.Points
	}
	return t.White.Points - t.Black.Points
}

// HasKing reports whether color still has a king on the board.
func HasKing(board chess.Board, color chess.Color) bool {
	for _, rank := range board {
		for _, piece := range rank {
			if piece.Type == chess.King && piece.Color == color {
				return true
			}
		}
	}
	return false
}
