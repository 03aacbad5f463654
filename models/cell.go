package models

// CellState is the visibility of a cell. A single enum keeps the
// flagged+revealed combination unrepresentable.
type CellState int

const (
	Hidden CellState = iota
	Flagged
	Revealed
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Cell is a single square of the minefield.
type Cell struct {
	x, y          int
	isMine        bool
	adjacentMines int
	state         CellState
}

func newCell(x, y int) Cell {
	return Cell{x: x, y: y, state: Hidden}
}

// X is the column of the cell.
func (c Cell) X() int { return c.x }

// Y is the row of the cell.
func (c Cell) Y() int { return c.y }

func (c Cell) IsMine() bool { return c.isMine }

// AdjacentMines is only meaningful for cells that are not mines.
func (c Cell) AdjacentMines() int { return c.adjacentMines }

func (c Cell) State() CellState { return c.state }

func (c Cell) IsRevealed() bool { return c.state == Revealed }

func (c Cell) IsFlagged() bool { return c.state == Flagged }

// reveal turns a hidden cell into a revealed one. With force set the cell is
// revealed whatever its current state, which is how the final board is shown.
func (c *Cell) reveal(force bool) {
	if c.state == Hidden || force {
		c.state = Revealed
	}
}

// toggleFlag switches between Hidden and Flagged. Revealed cells stay as they are.
func (c *Cell) toggleFlag() {
	switch c.state {
	case Hidden:
		c.state = Flagged
	case Flagged:
		c.state = Hidden
	}
}
