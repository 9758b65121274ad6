package chess

import "errors"

var (
	ErrInvalidEncoding = errors.New("invalid board encoding")
	ErrInvalidSquare   = errors.New("invalid square")
	ErrInvalidColor    = errors.New("invalid color")
)
