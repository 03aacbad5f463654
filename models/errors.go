package models

import "errors"

var (
	ErrInvalidBoard     = errors.New("invalid board dimensions")
	ErrInvalidMines     = errors.New("invalid mine placement")
	ErrAlreadyGenerated = errors.New("board already generated")
	ErrNotGenerated     = errors.New("board not generated")

	// Rejected cell actions. The board is left untouched when these are returned.
	ErrCellFlagged  = errors.New("cell is flagged")
	ErrCellRevealed = errors.New("cell is already revealed")
)
