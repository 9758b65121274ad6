package chess

import "fmt"

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// ParseColor accepts both the one-letter FEN form and the full name.
func ParseColor(s string) (Color, error) {
	switch s {
	case "w", "white":
		return White, nil
	case "b", "black":
		return Black, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Piece is a tagged {type, color} value. The zero Piece is an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == ""
}

// PieceFromLetter maps a FEN letter to a piece: case carries the color,
// the letter carries the type.
func PieceFromLetter(r rune) (Piece, bool) {
	color := Black
	if r >= 'A' && r <= 'Z' {
		color = White
		r += 'a' - 'A'
	}
	var t PieceType
	switch r {
	case 'p':
		t = Pawn
	case 'r':
		t = Rook
	case 'n':
		t = Knight
	case 'b':
		t = Bishop
	case 'q':
		t = Queen
	case 'k':
		t = King
	default:
		return Piece{}, false
	}
	return Piece{Type: t, Color: color}, true
}

func (p Piece) Letter() byte {
	var l byte
	switch p.Type {
	case Pawn:
		l = 'p'
	case Rook:
		l = 'r'
	case Knight:
		l = 'n'
	case Bishop:
		l = 'b'
	case Queen:
		l = 'q'
	case King:
		l = 'k'
	default:
		return 0
	}
	if p.Color == White {
		l -= 'a' - 'A'
	}
	return l
}

// Square addresses the board by file (0 = a) and row (0 = rank 8).
type Square struct {
	File int `json:"file"`
	Row  int `json:"row"`
}

// ParseSquare converts algebraic notation such as "e4" to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Square{File: int(s[0] - 'a'), Row: 8 - int(s[1]-'0')}, nil
}

func (sq Square) String() string {
	return fmt.Sprintf("%c%d", sq.File+'a', 8-sq.Row)
}

// Board is indexed [row][file] with row 0 holding rank 8.
type Board [8][8]Piece

func (b *Board) At(sq Square) Piece {
	return b[sq.Row][sq.File]
}

func (b *Board) Set(sq Square, p Piece) {
	b[sq.Row][sq.File] = p
}

func (b *Board) Clear(sq Square) {
	b[sq.Row][sq.File] = Piece{}
}
