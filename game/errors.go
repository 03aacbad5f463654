package game

import "errors"

var (
	// ErrInputFormat marks action text that could not be parsed.
	ErrInputFormat = errors.New("wrong input")
	// ErrOutOfBounds marks coordinates outside the board.
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	// ErrInvalidConfig marks settings that fall outside the board bounds.
	ErrInvalidConfig = errors.New("invalid config")
)
