package chess

// Validator holds one position and the side to move, and answers legality
// questions about single moves. It knows nothing of check, castling or en
// passant. It is not safe for concurrent use; the owner serialises access.
type Validator struct {
	board    Board
	turn     Color
	encoding string
	loaded   bool
}

func NewValidator(encoding string, turn Color) (*Validator, error) {
	v := NewEmptyValidator()
	if err := v.Load(encoding, turn); err != nil {
		return nil, err
	}
	return v, nil
}

// NewEmptyValidator returns a validator in the cleared state.
func NewEmptyValidator() *Validator {
	return &Validator{turn: White}
}

// Load replaces the position and side to move. On a decode error the
// previous state is left untouched.
func (v *Validator) Load(encoding string, turn Color) error {
	board, err := Decode(encoding)
	if err != nil {
		return err
	}
	v.board = board
	v.turn = turn
	v.encoding = Encode(board)
	v.loaded = true
	return nil
}

func (v *Validator) Clear() {
	v.board = Board{}
	v.encoding = ""
	v.loaded = false
}

func (v *Validator) Loaded() bool     { return v.loaded }
func (v *Validator) Turn() Color      { return v.turn }
func (v *Validator) Encoding() string { return v.encoding }

// Board returns a copy of the current position.
func (v *Validator) Board() Board { return v.board }

func (v *Validator) SetTurn(c Color) { v.turn = c }

// PassTurn hands the move to the other side. Move never does this itself.
func (v *Validator) PassTurn() { v.turn = v.turn.Opponent() }

func (v *Validator) IsMoveLegal(start, end string) bool {
	from, err := ParseSquare(start)
	if err != nil {
		return false
	}
	to, err := ParseSquare(end)
	if err != nil {
		return false
	}
	return v.isMoveLegal(from, to)
}

func (v *Validator) isMoveLegal(from, to Square) bool {
	if !v.loaded || from == to {
		return false
	}

	piece := v.board.At(from)
	if piece.IsEmpty() || piece.Color != v.turn {
		return false
	}
	// no self-capture
	if target := v.board.At(to); !target.IsEmpty() && target.Color == v.turn {
		return false
	}

	switch piece.Type {
	case Pawn:
		return v.isPawnMoveLegal(piece.Color, from, to)
	case Rook:
		return v.isRookMoveLegal(from, to)
	case Knight:
		return isKnightMoveLegal(from, to)
	case Bishop:
		return v.isBishopMoveLegal(from, to)
	case Queen:
		return v.isRookMoveLegal(from, to) || v.isBishopMoveLegal(from, to)
	case King:
		return isKingMoveLegal(from, to)
	default:
		return false
	}
}

func (v *Validator) isPawnMoveLegal(color Color, from, to Square) bool {
	dir, homeRow := -1, 6
	if color == Black {
		dir, homeRow = 1, 1
	}
	dr := to.Row - from.Row
	df := to.File - from.File

	// capture
	if abs(df) == 1 && dr == dir && !v.board.At(to).IsEmpty() {
		return true
	}

	if df != 0 {
		return false
	}
	if dr == dir && v.board.At(to).IsEmpty() {
		return true
	}
	if from.Row == homeRow && dr == 2*dir {
		mid := Square{File: from.File, Row: from.Row + dir}
		return v.board.At(mid).IsEmpty() && v.board.At(to).IsEmpty()
	}
	return false
}

func (v *Validator) isRookMoveLegal(from, to Square) bool {
	if from.Row != to.Row && from.File != to.File {
		return false
	}
	return v.pathClear(from, to)
}

func (v *Validator) isBishopMoveLegal(from, to Square) bool {
	if abs(to.Row-from.Row) != abs(to.File-from.File) {
		return false
	}
	return v.pathClear(from, to)
}

func isKnightMoveLegal(from, to Square) bool {
	dr := abs(to.Row - from.Row)
	df := abs(to.File - from.File)
	return (dr == 2 && df == 1) || (dr == 1 && df == 2)
}

func isKingMoveLegal(from, to Square) bool {
	return abs(to.Row-from.Row) <= 1 && abs(to.File-from.File) <= 1
}

// pathClear walks the ray from one square to another and reports whether
// every square strictly between them is empty. Callers guarantee the two
// squares share a line or a diagonal.
func (v *Validator) pathClear(from, to Square) bool {
	step := Square{File: sign(to.File - from.File), Row: sign(to.Row - from.Row)}
	sq := Square{File: from.File + step.File, Row: from.Row + step.Row}
	for sq != to {
		if !v.board.At(sq).IsEmpty() {
			return false
		}
		sq = Square{File: sq.File + step.File, Row: sq.Row + step.Row}
	}
	return true
}

// Moves lists every square the piece on square may legally move to,
// ordered rank 8 to rank 1 and a to h within a rank.
func (v *Validator) Moves(square string) []string {
	from, err := ParseSquare(square)
	if err != nil || v.board.At(from).IsEmpty() {
		return nil
	}

	var moves []string
	for row := 0; row < 8; row++ {
		for file := 0; file < 8; file++ {
			to := Square{File: file, Row: row}
			if v.isMoveLegal(from, to) {
				moves = append(moves, to.String())
			}
		}
	}
	return moves
}

// Move applies a legal move and re-derives the encoding. It reports false,
// leaving the position untouched, when the move is illegal.
func (v *Validator) Move(start, end string) bool {
	from, err := ParseSquare(start)
	if err != nil {
		return false
	}
	to, err := ParseSquare(end)
	if err != nil {
		return false
	}
	if !v.isMoveLegal(from, to) {
		return false
	}

	v.board.Set(to, v.board.At(from))
	v.board.Clear(from)
	v.encoding = Encode(v.board)
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
