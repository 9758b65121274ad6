package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// StartEncoding is the piece placement of the standard starting position.
const StartEncoding = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// Decode parses the piece placement field of a FEN string. Any trailing
// fields (side to move, castling, ...) are ignored.
func Decode(encoding string) (Board, error) {
	var board Board

	fields := strings.Fields(encoding)
	if len(fields) == 0 {
		return board, fmt.Errorf("%w: empty", ErrInvalidEncoding)
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return board, fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidEncoding, len(ranks))
	}

	for row, rank := range ranks {
		file := 0
		for _, c := range rank {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				if file > 8 {
					return board, fmt.Errorf("%w: rank %d overflows", ErrInvalidEncoding, 8-row)
				}
				continue
			}
			piece, ok := PieceFromLetter(c)
			if !ok {
				return board, fmt.Errorf("%w: unexpected %q in rank %d", ErrInvalidEncoding, c, 8-row)
			}
			if file >= 8 {
				return board, fmt.Errorf("%w: rank %d overflows", ErrInvalidEncoding, 8-row)
			}
			board[row][file] = piece
			file++
		}
		if file != 8 {
			return board, fmt.Errorf("%w: rank %d has %d files", ErrInvalidEncoding, 8-row, file)
		}
	}
	return board, nil
}

// Encode is the inverse of Decode. It emits only the placement field.
func Encode(board Board) string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := board[row][file]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
