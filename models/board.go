package models

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
)

// Bounds accepted when a game is set up interactively.
const (
	MinWidth  = 8
	MaxWidth  = 30
	MinHeight = 8
	MaxHeight = 24
	MinMines  = 1
)

// MaxMines is the largest mine count offered for a width x height field.
func MaxMines(width, height int) int {
	return (width - 1) * (height - 1)
}

// Position addresses a cell by column (X) and row (Y), both zero based.
type Position struct {
	X, Y int
}

// Board owns the grid of cells. It is not safe for concurrent use; a game
// drives one board from a single goroutine.
//
// Coordinates passed to FlagCell and RevealCell must be inside the board.
// Callers check with InBounds first.
type Board struct {
	width     int
	height    int
	mineCount int
	cells     [][]Cell

	rng             *rand.Rand
	safeFirstReveal bool
	generated       bool
}

// Option configures a Board.
type Option func(*Board)

// WithRand makes the board draw mine positions from r.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) {
		b.rng = r
	}
}

// WithSeed is WithRand with a generator derived from seed.
func WithSeed(seed int64) Option {
	return WithRand(NewRand(seed))
}

// WithSafeFirstReveal defers mine placement to the first reveal, and keeps
// the revealed cell free of mines.
func WithSafeFirstReveal() Option {
	return func(b *Board) {
		b.safeFirstReveal = true
	}
}

// NewBoard creates a board with every cell hidden and no mines yet. Call
// Generate (or PlaceMines) before revealing, unless the board was created
// with WithSafeFirstReveal.
func NewBoard(width, height, mineCount int, opts ...Option) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoard, width, height)
	}
	if mineCount < 1 || mineCount >= width*height {
		return nil, fmt.Errorf("%w: %d mines on a %dx%d board", ErrInvalidBoard, mineCount, width, height)
	}

	b := &Board{
		width:     width,
		height:    height,
		mineCount: mineCount,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = newTimeSeededRand()
	}
	b.initCells()

	return b, nil
}

func (b *Board) Width() int      { return b.width }
func (b *Board) Height() int     { return b.height }
func (b *Board) MineCount() int  { return b.mineCount }
func (b *Board) Generated() bool { return b.generated }

// SafeFirstReveal reports whether mines are placed lazily on the first reveal.
func (b *Board) SafeFirstReveal() bool { return b.safeFirstReveal }

// Cell returns a copy of the cell at (x, y).
func (b *Board) Cell(x, y int) Cell {
	return b.cells[y][x]
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Generate resets the grid, places the mines at random and computes the
// adjacency counts. It may be called only once.
func (b *Board) Generate() error {
	if b.generated {
		return ErrAlreadyGenerated
	}
	b.initCells()
	b.placeMines(nil)
	b.calculateAdjacentNumbers()
	b.generated = true
	return nil
}

// PlaceMines generates the board with mines at exactly the given positions
// instead of random ones.
func (b *Board) PlaceMines(positions []Position) error {
	if b.generated {
		return ErrAlreadyGenerated
	}
	if len(positions) != b.mineCount {
		return fmt.Errorf("%w: got %d positions, want %d", ErrInvalidMines, len(positions), b.mineCount)
	}

	seen := mapset.New[Position]()
	for _, p := range positions {
		if !b.InBounds(p.X, p.Y) {
			return fmt.Errorf("%w: (%d,%d) is outside the board", ErrInvalidMines, p.X, p.Y)
		}
		if seen.Has(p) {
			return fmt.Errorf("%w: duplicate mine at (%d,%d)", ErrInvalidMines, p.X, p.Y)
		}
		seen.Put(p)
	}

	b.initCells()
	for _, p := range positions {
		b.cells[p.Y][p.X].isMine = true
	}
	b.calculateAdjacentNumbers()
	b.generated = true
	return nil
}

// FlagCell toggles the flag on a hidden or flagged cell.
func (b *Board) FlagCell(x, y int) error {
	cell := &b.cells[y][x]
	if cell.state == Revealed {
		return ErrCellRevealed
	}
	cell.toggleFlag()
	return nil
}

// RevealCell reveals the cell at (x, y). Revealing a cell with no adjacent
// mines spreads to the whole connected empty region and the numbered cells
// bordering it. Flagged cells must be unflagged before they can be revealed.
// A rejected reveal does not trigger lazy mine placement.
func (b *Board) RevealCell(x, y int) error {
	cell := &b.cells[y][x]
	switch cell.state {
	case Flagged:
		return ErrCellFlagged
	case Revealed:
		return ErrCellRevealed
	}

	if !b.generated {
		if !b.safeFirstReveal {
			return ErrNotGenerated
		}
		b.placeMines(&Position{X: x, Y: y})
		b.calculateAdjacentNumbers()
		b.generated = true
	}

	cell.reveal(false)
	if cell.isMine {
		return nil
	}

	// Flagged cells keep their flag but the fill spreads through them.
	visited := mapset.New[Position]()
	visited.Put(Position{X: x, Y: y})
	work := stack.New[*Cell]()
	work.Push(cell)
	for work.Size() > 0 {
		current := work.Pop()
		if current.isMine || current.adjacentMines > 0 {
			continue
		}
		b.eachNeighbor(current.x, current.y, func(n *Cell) {
			p := Position{X: n.x, Y: n.y}
			if n.state == Revealed || visited.Has(p) {
				return
			}
			visited.Put(p)
			n.reveal(false)
			work.Push(n)
		})
	}

	return nil
}

// RevealAllCells force-reveals the whole board, flags included.
func (b *Board) RevealAllCells() {
	for row := range b.cells {
		for col := range b.cells[row] {
			b.cells[row][col].reveal(true)
		}
	}
}

// CheckGameState scans the board: a revealed mine loses, all free cells
// revealed wins.
func (b *Board) CheckGameState() GameState {
	freeCells := 0
	for row := range b.cells {
		for _, cell := range b.cells[row] {
			if cell.state != Revealed {
				continue
			}
			if cell.isMine {
				return Lost
			}
			freeCells++
		}
	}

	if freeCells == b.width*b.height-b.mineCount {
		return Won
	}
	return Playing
}

// FlagCount is the number of cells currently flagged.
func (b *Board) FlagCount() int {
	return b.count(func(c Cell) bool { return c.state == Flagged })
}

// RevealedCount is the number of cells currently revealed.
func (b *Board) RevealedCount() int {
	return b.count(func(c Cell) bool { return c.state == Revealed })
}

func (b *Board) count(pred func(Cell) bool) int {
	n := 0
	for row := range b.cells {
		for _, cell := range b.cells[row] {
			if pred(cell) {
				n++
			}
		}
	}
	return n
}

func (b *Board) initCells() {
	b.cells = make([][]Cell, b.height)
	for row := range b.cells {
		b.cells[row] = make([]Cell, b.width)
		for col := range b.cells[row] {
			b.cells[row][col] = newCell(col, row)
		}
	}
}

// placeMines draws positions until mineCount distinct cells hold a mine.
// An excluded position is never mined. There is always room: mineCount is
// below width*height, and with an exclusion there are width*height-1 free
// cells left.
func (b *Board) placeMines(exclude *Position) {
	placed := 0
	for placed < b.mineCount {
		col := b.rng.IntN(b.width)
		row := b.rng.IntN(b.height)

		if exclude != nil && exclude.X == col && exclude.Y == row {
			continue
		}
		if b.cells[row][col].isMine {
			continue
		}
		b.cells[row][col].isMine = true
		placed++
	}
}

func (b *Board) calculateAdjacentNumbers() {
	for row := range b.cells {
		for col := range b.cells[row] {
			cell := &b.cells[row][col]
			if cell.isMine {
				continue
			}
			mines := 0
			b.eachNeighbor(col, row, func(n *Cell) {
				if n.isMine {
					mines++
				}
			})
			cell.adjacentMines = mines
		}
	}
}

// eachNeighbor calls fn for each of the up to eight cells around (x, y).
// Adjacency counting and flood fill share it so both use the same neighbourhood.
func (b *Board) eachNeighbor(x, y int, fn func(*Cell)) {
	for deltaRow := -1; deltaRow <= 1; deltaRow++ {
		for deltaCol := -1; deltaCol <= 1; deltaCol++ {
			if deltaRow == 0 && deltaCol == 0 {
				continue
			}
			nx, ny := x+deltaCol, y+deltaRow
			if b.InBounds(nx, ny) {
				fn(&b.cells[ny][nx])
			}
		}
	}
}
