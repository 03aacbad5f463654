package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/dimaq12/termsweeper/models"
)

const tuiHelp = "arrows move, enter/space reveal, f flag, q quit"

var tuiDigitColors = [...]tcell.Color{
	tcell.ColorDodgerBlue, tcell.ColorGreen, tcell.ColorRed, tcell.ColorPurple,
	tcell.ColorMaroon, tcell.ColorTeal, tcell.ColorWhite, tcell.ColorGray,
}

// MinesweeperService plays a game in a full-screen table. Every key press is
// applied to the board directly from the tview event loop.
type MinesweeperService struct {
	board  *models.Board
	table  *tview.Table
	status *tview.TextView
	app    *tview.Application

	deps
	started time.Time
	state   models.GameState
}

// NewMinesweeperService builds a board from settings, which must be complete
// (see BoardSettings.WithDefaults).
func NewMinesweeperService(settings BoardSettings, opts ...Option) (*MinesweeperService, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	board, err := models.NewBoard(settings.Width, settings.Height, settings.Mines, settings.boardOptions()...)
	if err != nil {
		return nil, err
	}
	if !board.SafeFirstReveal() {
		if err := board.Generate(); err != nil {
			return nil, err
		}
	}

	s := &MinesweeperService{
		board:  board,
		table:  tview.NewTable(),
		status: tview.NewTextView(),
		app:    tview.NewApplication(),
		deps:   newDeps(opts),
		state:  models.Playing,
	}
	s.started = s.clock.Now()

	s.DrawBoard()
	s.table.SetSelectable(true, true)
	s.table.Select(0, 0)
	s.table.SetInputCapture(s.handleKey)
	s.status.SetText(tuiHelp)

	return s, nil
}

// Run blocks until the player quits and returns the last game state.
func (s *MinesweeperService) Run() (models.GameState, error) {
	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(s.table, 0, 1, true).
		AddItem(s.status, 1, 0, false)

	if err := s.app.SetRoot(layout, true).Run(); err != nil {
		return s.state, err
	}
	return s.state, nil
}

func (s *MinesweeperService) DrawBoard() {
	for row := 0; row < s.board.Height(); row++ {
		for col := 0; col < s.board.Width(); col++ {
			s.RenderCell(row, col)
		}
	}
}

func (s *MinesweeperService) RenderCell(row, col int) {
	cell := s.board.Cell(col, row)

	color := tcell.ColorSilver
	switch {
	case cell.IsFlagged():
		color = tcell.ColorYellow
	case cell.IsRevealed() && cell.IsMine():
		color = tcell.ColorRed
	case cell.IsRevealed() && cell.AdjacentMines() > 0:
		color = tuiDigitColors[cell.AdjacentMines()-1]
	case cell.IsRevealed():
		color = tcell.ColorDimGray
	}

	s.table.SetCell(row, col, tview.NewTableCell(cellSymbol(cell)).
		SetAlign(tview.AlignCenter).
		SetTextColor(color))
}

func (s *MinesweeperService) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		s.app.Stop()
		return nil
	case tcell.KeyEnter:
		s.act(ActionReveal)
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case ' ':
			s.act(ActionReveal)
		case 'f', 'F':
			s.act(ActionFlag)
		case 'q', 'Q':
			s.app.Stop()
		}
		return nil
	}
	return event
}

func (s *MinesweeperService) act(kind ActionKind) {
	if s.state.Terminal() {
		return
	}

	row, col := s.table.GetSelection()
	var err error
	switch kind {
	case ActionFlag:
		err = s.board.FlagCell(col, row)
	case ActionReveal:
		err = s.board.RevealCell(col, row)
	}
	s.logger.Debug("Action", "kind", kind, "x", col, "y", row, "error", err)

	switch {
	case errors.Is(err, models.ErrCellFlagged):
		s.status.SetText("This cell is flagged!")
		return
	case errors.Is(err, models.ErrCellRevealed):
		s.status.SetText("This cell has already been explored!")
		return
	case err != nil:
		s.status.SetText(fmt.Sprintf("Error: %v", err))
		return
	}

	s.state = s.board.CheckGameState()
	switch s.state {
	case models.Won:
		s.status.SetText(fmt.Sprintf("Congratulations, you won the game in %s! Press q to quit.", s.elapsed()))
	case models.Lost:
		s.board.RevealAllCells()
		s.status.SetText(fmt.Sprintf("You lost after %s! Press q to quit.", s.elapsed()))
	default:
		s.status.SetText(fmt.Sprintf("%d/%d flagged  %s", s.board.FlagCount(), s.board.MineCount(), tuiHelp))
	}
	if s.state.Terminal() {
		s.logger.Info("Game over", "state", s.state, "elapsed", s.elapsed())
		s.table.SetSelectable(false, false)
	}

	// a reveal may cascade over the whole board
	s.DrawBoard()
}

func (s *MinesweeperService) elapsed() time.Duration {
	return s.clock.Since(s.started).Round(time.Second)
}

// StatusText is the text on the status line.
func (s *MinesweeperService) StatusText() string {
	return s.status.GetText(true)
}
