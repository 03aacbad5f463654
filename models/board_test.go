package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
)

func newGeneratedBoard(t *testing.T, width, height, mines int, seed int64) *Board {
	t.Helper()
	b, err := NewBoard(width, height, mines, WithSeed(seed))
	require.NoError(t, err)
	require.NoError(t, b.Generate())
	return b
}

func newBoardWithMines(t *testing.T, width, height int, mines ...Position) *Board {
	t.Helper()
	b, err := NewBoard(width, height, len(mines))
	require.NoError(t, err)
	require.NoError(t, b.PlaceMines(mines))
	return b
}

// bruteForceAdjacent counts mines around (x, y) without using the board helpers.
func bruteForceAdjacent(b *Board, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= b.Width() || ny >= b.Height() {
				continue
			}
			if b.Cell(nx, ny).IsMine() {
				n++
			}
		}
	}
	return n
}

// expectedReveal is the connected zero region around start plus its numbered border.
func expectedReveal(b *Board, start Position) mapset.Set[Position] {
	want := mapset.New[Position]()
	queue := []Position{start}
	want.Put(start)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if b.Cell(p.X, p.Y).AdjacentMines() > 0 {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := Position{p.X + dx, p.Y + dy}
				if !b.InBounds(n.X, n.Y) || want.Has(n) {
					continue
				}
				want.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return want
}

func revealedSet(b *Board) mapset.Set[Position] {
	got := mapset.New[Position]()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.Cell(x, y).IsRevealed() {
				got.Put(Position{x, y})
			}
		}
	}
	return got
}

func TestNewBoardValidation(t *testing.T) {
	tests := []struct {
		name                 string
		width, height, mines int
	}{
		{"zero width", 0, 8, 1},
		{"negative height", 8, -1, 1},
		{"no mines", 8, 8, 0},
		{"every cell a mine", 8, 8, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoard(tt.width, tt.height, tt.mines)
			assert.ErrorIs(t, err, ErrInvalidBoard)
		})
	}
}

func TestNewBoardStartsHidden(t *testing.T) {
	b, err := NewBoard(10, 8, 5)
	require.NoError(t, err)

	assert.Equal(t, 10, b.Width())
	assert.Equal(t, 8, b.Height())
	assert.Equal(t, 5, b.MineCount())
	assert.False(t, b.Generated())
	assert.Equal(t, 0, b.RevealedCount())
	assert.Equal(t, Playing, b.CheckGameState())

	c := b.Cell(9, 7)
	assert.Equal(t, 9, c.X())
	assert.Equal(t, 7, c.Y())
}

func TestGeneratePlacesExactMineCount(t *testing.T) {
	tests := []struct {
		width, height, mines int
	}{
		{8, 8, 1},
		{8, 8, 10},
		{30, 24, 99},
		{16, 16, 225},
		{8, 8, 63},
	}

	for _, tt := range tests {
		for seed := int64(1); seed <= 5; seed++ {
			b := newGeneratedBoard(t, tt.width, tt.height, tt.mines, seed)

			mines := 0
			for y := 0; y < b.Height(); y++ {
				for x := 0; x < b.Width(); x++ {
					c := b.Cell(x, y)
					assert.Equal(t, Hidden, c.State())
					if c.IsMine() {
						mines++
						continue
					}
					assert.Equal(t, bruteForceAdjacent(b, x, y), c.AdjacentMines(),
						"adjacent count at (%d,%d)", x, y)
				}
			}
			assert.Equal(t, tt.mines, mines, "%dx%d seed %d", tt.width, tt.height, seed)
		}
	}
}

func TestGenerateOnce(t *testing.T) {
	b := newGeneratedBoard(t, 8, 8, 10, 1)
	assert.ErrorIs(t, b.Generate(), ErrAlreadyGenerated)
	assert.ErrorIs(t, b.PlaceMines(nil), ErrAlreadyGenerated)
}

func TestSameSeedSameLayout(t *testing.T) {
	a := newGeneratedBoard(t, 12, 9, 20, 42)
	b := newGeneratedBoard(t, 12, 9, 20, 42)

	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			require.Equal(t, a.Cell(x, y), b.Cell(x, y))
		}
	}
}

func TestPlaceMinesValidation(t *testing.T) {
	tests := []struct {
		name      string
		positions []Position
	}{
		{"too few", []Position{{0, 0}}},
		{"out of bounds", []Position{{0, 0}, {8, 0}}},
		{"duplicate", []Position{{1, 1}, {1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBoard(8, 8, 2)
			require.NoError(t, err)
			assert.ErrorIs(t, b.PlaceMines(tt.positions), ErrInvalidMines)
			assert.False(t, b.Generated())
		})
	}
}

func TestRevealBeforeGenerate(t *testing.T) {
	b, err := NewBoard(8, 8, 10)
	require.NoError(t, err)
	assert.ErrorIs(t, b.RevealCell(0, 0), ErrNotGenerated)
	assert.Equal(t, 0, b.RevealedCount())
}

func TestFlagCell(t *testing.T) {
	b := newBoardWithMines(t, 8, 8, Position{0, 0})

	require.NoError(t, b.FlagCell(3, 3))
	assert.Equal(t, Flagged, b.Cell(3, 3).State())
	assert.Equal(t, 1, b.FlagCount())

	require.NoError(t, b.FlagCell(3, 3))
	assert.Equal(t, Hidden, b.Cell(3, 3).State())
	assert.Equal(t, 0, b.FlagCount())
}

func TestFlagRevealedCellIsRejected(t *testing.T) {
	b := newBoardWithMines(t, 8, 8, Position{0, 0})
	require.NoError(t, b.RevealCell(1, 1))

	assert.ErrorIs(t, b.FlagCell(1, 1), ErrCellRevealed)
	assert.Equal(t, Revealed, b.Cell(1, 1).State())
}

func TestRevealFlaggedCellIsRejected(t *testing.T) {
	b := newBoardWithMines(t, 8, 8, Position{0, 0}, Position{5, 5})
	require.NoError(t, b.FlagCell(7, 7))
	before := b.CheckGameState()

	assert.ErrorIs(t, b.RevealCell(7, 7), ErrCellFlagged)
	assert.Equal(t, Flagged, b.Cell(7, 7).State())
	assert.Equal(t, 0, b.RevealedCount())
	assert.Equal(t, before, b.CheckGameState())
}

func TestRevealMineLoses(t *testing.T) {
	b := newBoardWithMines(t, 8, 8, Position{4, 4}, Position{0, 7})

	require.NoError(t, b.RevealCell(4, 4))
	assert.Equal(t, 1, b.RevealedCount(), "a mine never cascades")
	assert.Equal(t, Lost, b.CheckGameState())
}

func TestRevealNumberedCellDoesNotSpread(t *testing.T) {
	b := newBoardWithMines(t, 8, 8, Position{0, 0})

	require.NoError(t, b.RevealCell(1, 1))
	assert.Equal(t, 1, b.Cell(1, 1).AdjacentMines())
	assert.Equal(t, 1, b.RevealedCount())
	assert.Equal(t, Playing, b.CheckGameState())
}

func TestRevealFarFromSingleMine(t *testing.T) {
	b := newBoardWithMines(t, 8, 8, Position{0, 0})
	require.Equal(t, 0, b.Cell(7, 7).AdjacentMines())

	require.NoError(t, b.RevealCell(7, 7))

	assert.Equal(t, Hidden, b.Cell(0, 0).State())
	for _, p := range []Position{{1, 0}, {0, 1}, {1, 1}} {
		c := b.Cell(p.X, p.Y)
		assert.True(t, c.IsRevealed(), "border cell %v", p)
		assert.Equal(t, 1, c.AdjacentMines())
	}
	assert.Equal(t, 63, b.RevealedCount())
	assert.Equal(t, Won, b.CheckGameState())
}

func TestRevealStopsAtNumberedWall(t *testing.T) {
	var wall []Position
	for y := 0; y < 8; y++ {
		wall = append(wall, Position{3, y})
	}
	b := newBoardWithMines(t, 8, 8, wall...)

	require.NoError(t, b.RevealCell(7, 7))

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, x >= 4, b.Cell(x, y).IsRevealed(), "cell (%d,%d)", x, y)
		}
	}
	assert.Equal(t, 32, b.RevealedCount())
	assert.Equal(t, Playing, b.CheckGameState())
}

func TestRevealMatchesZeroRegionAndBorder(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		b := newGeneratedBoard(t, 16, 12, 20, seed)

		var start *Position
		for y := 0; y < b.Height() && start == nil; y++ {
			for x := 0; x < b.Width(); x++ {
				c := b.Cell(x, y)
				if !c.IsMine() && c.AdjacentMines() == 0 {
					start = &Position{x, y}
					break
				}
			}
		}
		if start == nil {
			continue
		}

		want := expectedReveal(b, *start)
		require.NoError(t, b.RevealCell(start.X, start.Y))
		got := revealedSet(b)

		assert.Equal(t, want.Size(), got.Size(), "seed %d", seed)
		want.Each(func(p Position) {
			assert.True(t, got.Has(p), "seed %d: %v should be revealed", seed, p)
		})
	}
}

func TestRevealTwiceIsIdempotent(t *testing.T) {
	b := newBoardWithMines(t, 8, 8, Position{0, 0})
	require.NoError(t, b.RevealCell(1, 1))
	before := b.RevealedCount()

	assert.ErrorIs(t, b.RevealCell(1, 1), ErrCellRevealed)
	assert.Equal(t, before, b.RevealedCount())
}

func TestFloodFillKeepsFlags(t *testing.T) {
	b := newBoardWithMines(t, 8, 8, Position{0, 0})
	require.NoError(t, b.FlagCell(5, 5))

	require.NoError(t, b.RevealCell(7, 7))

	assert.Equal(t, Flagged, b.Cell(5, 5).State())
	assert.Equal(t, 62, b.RevealedCount())
	assert.Equal(t, Playing, b.CheckGameState())
}

func TestFloodFillSpreadsPastFlagWall(t *testing.T) {
	b := newBoardWithMines(t, 8, 8, Position{0, 0})
	for y := 0; y < 8; y++ {
		require.NoError(t, b.FlagCell(4, y))
	}

	require.NoError(t, b.RevealCell(7, 7))

	for y := 0; y < 8; y++ {
		assert.Equal(t, Flagged, b.Cell(4, y).State(), "flag at (4,%d)", y)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			if x == 0 && y == 0 {
				continue
			}
			assert.True(t, b.Cell(x, y).IsRevealed(), "cell (%d,%d)", x, y)
		}
	}
	assert.False(t, b.Cell(0, 0).IsRevealed())
	assert.Equal(t, 55, b.RevealedCount())
	assert.Equal(t, 8, b.FlagCount())
	assert.Equal(t, Playing, b.CheckGameState())
}

func TestRevealAllCells(t *testing.T) {
	b := newBoardWithMines(t, 8, 8, Position{2, 2})
	require.NoError(t, b.FlagCell(2, 2))

	b.RevealAllCells()

	assert.Equal(t, 64, b.RevealedCount())
	assert.Equal(t, 0, b.FlagCount())
	assert.Equal(t, Lost, b.CheckGameState())
}

func TestAllButOneMineWinsOnSingleReveal(t *testing.T) {
	b := newGeneratedBoard(t, 8, 8, 63, 7)

	var free *Position
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if !b.Cell(x, y).IsMine() {
				free = &Position{x, y}
			}
		}
	}
	require.NotNil(t, free)
	assert.Equal(t, Playing, b.CheckGameState())

	require.NoError(t, b.RevealCell(free.X, free.Y))
	assert.Equal(t, Won, b.CheckGameState())
}

func TestSafeFirstReveal(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		b, err := NewBoard(8, 8, 63, WithSeed(seed), WithSafeFirstReveal())
		require.NoError(t, err)
		require.False(t, b.Generated())

		x, y := int(seed%8), int(seed%5)
		require.NoError(t, b.RevealCell(x, y))

		assert.True(t, b.Generated())
		assert.False(t, b.Cell(x, y).IsMine())
		assert.Equal(t, Won, b.CheckGameState(), "seed %d", seed)
	}
}

func TestSafeFirstRevealIgnoresRejectedReveal(t *testing.T) {
	b, err := NewBoard(8, 8, 63, WithSeed(5), WithSafeFirstReveal())
	require.NoError(t, err)
	require.NoError(t, b.FlagCell(0, 0))

	assert.ErrorIs(t, b.RevealCell(0, 0), ErrCellFlagged)
	assert.False(t, b.Generated())

	require.NoError(t, b.RevealCell(7, 7))
	assert.False(t, b.Cell(7, 7).IsMine())
	assert.Equal(t, Won, b.CheckGameState())
}

func TestSafeFirstRevealKeepsEarlyFlags(t *testing.T) {
	b, err := NewBoard(10, 10, 10, WithSeed(3), WithSafeFirstReveal())
	require.NoError(t, err)
	require.NoError(t, b.FlagCell(9, 9))

	require.NoError(t, b.RevealCell(0, 0))

	assert.Equal(t, Flagged, b.Cell(9, 9).State())
	mines := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if b.Cell(x, y).IsMine() {
				mines++
			}
		}
	}
	assert.Equal(t, 10, mines)
}

func TestMaxMines(t *testing.T) {
	assert.Equal(t, 49, MaxMines(8, 8))
	assert.Equal(t, 667, MaxMines(30, 24))
}
