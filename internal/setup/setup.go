// Package setup validates the starting arrangement each player chooses for
// their own two back ranks and composes the two arrangements into a full
// starting position.
package setup

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/benbeisheim/roomchess-backend/internal/chess"
)

// Standard is the usual arrangement: pawns in front, pieces behind.
const Standard = "PPPPPPPP/RNBQKBNR"

var ErrInvalidArrangement = errors.New("invalid arrangement")

// Arrangement is a two-rank placement written from the owning player's
// side in uppercase letters: the pawn rank first, then the back rank.
type Arrangement string

var pieceLimits = map[chess.PieceType]int{
	chess.Pawn:   8,
	chess.Rook:   2,
	chess.Knight: 2,
	chess.Bishop: 2,
	chess.Queen:  1,
	chess.King:   1,
}

// Validate checks that the arrangement holds exactly one full army in two
// ranks and that the bishops stand on opposite square colors.
func Validate(a Arrangement) error {
	_, err := parse(a)
	return err
}

// parse returns the arrangement as two rows of pieces, front rank first.
func parse(a Arrangement) ([2][8]chess.Piece, error) {
	var rows [2][8]chess.Piece

	if a == "" {
		a = Standard
	}
	ranks := strings.Split(string(a), "/")
	if len(ranks) != 2 {
		return rows, fmt.Errorf("%w: need 2 ranks, got %d", ErrInvalidArrangement, len(ranks))
	}

	counts := make(map[chess.PieceType]int)
	bishopShade := -1
	total := 0
	for i, rank := range ranks {
		file := 0
		for _, c := range rank {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				if file > 8 {
					return rows, fmt.Errorf("%w: rank %d overflows", ErrInvalidArrangement, i+1)
				}
				continue
			}
			if !unicode.IsUpper(c) {
				return rows, fmt.Errorf("%w: unexpected %q", ErrInvalidArrangement, c)
			}
			piece, ok := chess.PieceFromLetter(c)
			if !ok {
				return rows, fmt.Errorf("%w: unexpected %q", ErrInvalidArrangement, c)
			}
			if file >= 8 {
				return rows, fmt.Errorf("%w: rank %d overflows", ErrInvalidArrangement, i+1)
			}

			counts[piece.Type]++
			if counts[piece.Type] > pieceLimits[piece.Type] {
				return rows, fmt.Errorf("%w: too many %ss", ErrInvalidArrangement, piece.Type)
			}
			if piece.Type == chess.Bishop {
				// Front rank is rank 2, back rank is rank 1.
				shade := (file + 2 - i) % 2
				if shade == bishopShade {
					return rows, fmt.Errorf("%w: bishops share a square color", ErrInvalidArrangement)
				}
				bishopShade = shade
			}

			rows[i][file] = piece
			file++
			total++
		}
		if file != 8 {
			return rows, fmt.Errorf("%w: rank %d has %d files", ErrInvalidArrangement, i+1, file)
		}
	}

	if total != 16 {
		return rows, fmt.Errorf("%w: need 16 pieces, got %d", ErrInvalidArrangement, total)
	}
	return rows, nil
}

// Compose builds the starting encoding for two arrangements. White's front
// and back ranks become ranks 2 and 1; black's are mirrored onto ranks 7
// and 8 with the file order kept, so two Standard arrangements give
// chess.StartEncoding.
func Compose(white, black Arrangement) (string, error) {
	w, err := parse(white)
	if err != nil {
		return "", fmt.Errorf("white: %w", err)
	}
	b, err := parse(black)
	if err != nil {
		return "", fmt.Errorf("black: %w", err)
	}

	var board chess.Board
	for file := 0; file < 8; file++ {
		board[6][file] = w[0][file]
		board[7][file] = w[1][file]
		board[1][file] = recolor(b[0][file], chess.Black)
		board[0][file] = recolor(b[1][file], chess.Black)
	}
	return chess.Encode(board), nil
}

func recolor(p chess.Piece, c chess.Color) chess.Piece {
	if p.IsEmpty() {
		return p
	}
	p.Color = c
	return p
}
