package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/dimaq12/termsweeper/models"
)

// Bound is an inclusive range the player is asked to pick a number from.
type Bound struct {
	Name   string // used in error notices, e.g. "width"
	Prompt string
	Min    int
	Max    int
}

func (b Bound) Contains(n int) bool {
	return n >= b.Min && n <= b.Max
}

// InputSource supplies the player's choices. ReadBoundedInt only returns
// values inside the bound; asking again is up to the source. ReadAction
// returns an error wrapping ErrInputFormat for text it cannot parse.
type InputSource interface {
	ReadBoundedInt(ctx context.Context, bound Bound) (int, error)
	ReadAction(ctx context.Context) (Action, error)
}

// BoardView is the read-only board a renderer draws.
type BoardView interface {
	Width() int
	Height() int
	Cell(x, y int) models.Cell
}

// Renderer shows the board and messages to the player.
type Renderer interface {
	Render(board BoardView)
	Notify(msg string)
	Finish(state models.GameState, board BoardView, elapsed time.Duration)
}

// deps are shared by the console controller and the interactive service.
type deps struct {
	logger *log.Logger
	clock  quartz.Clock
}

// Option configures a Controller or a MinesweeperService.
type Option func(*deps)

func WithLogger(logger *log.Logger) Option {
	return func(d *deps) {
		d.logger = logger
	}
}

// WithClock sets the clock used to time the game.
func WithClock(clock quartz.Clock) Option {
	return func(d *deps) {
		d.clock = clock
	}
}

func newDeps(opts []Option) deps {
	d := deps{
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Controller drives a single game from setup to a terminal state.
type Controller struct {
	deps
	input    InputSource
	renderer Renderer
	settings BoardSettings
}

func NewController(input InputSource, renderer Renderer, settings BoardSettings, opts ...Option) *Controller {
	return &Controller{
		deps:     newDeps(opts),
		input:    input,
		renderer: renderer,
		settings: settings,
	}
}

// Run plays one game and returns its final state. It returns early with an
// error when the input is exhausted, the context is cancelled or the
// preset settings are out of bounds.
func (c *Controller) Run(ctx context.Context) (models.GameState, error) {
	board, err := c.setupBoard(ctx)
	if err != nil {
		return models.Playing, err
	}

	start := c.clock.Now()
	state := models.Playing
	for !state.Terminal() {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		c.renderer.Render(board)
		if err := c.playTurn(ctx, board); err != nil {
			return state, err
		}
		state = board.CheckGameState()
	}

	if state == models.Lost {
		board.RevealAllCells()
	}
	elapsed := c.clock.Since(start)
	c.logger.Info("Game over", "state", state, "elapsed", elapsed.Round(time.Second))
	c.renderer.Finish(state, board, elapsed)

	return state, nil
}

func (c *Controller) setupBoard(ctx context.Context) (*models.Board, error) {
	width, err := c.dimension(ctx, c.settings.Width, Bound{
		Name: "width", Prompt: "Width of the field", Min: models.MinWidth, Max: models.MaxWidth,
	})
	if err != nil {
		return nil, err
	}
	height, err := c.dimension(ctx, c.settings.Height, Bound{
		Name: "height", Prompt: "Height of the field", Min: models.MinHeight, Max: models.MaxHeight,
	})
	if err != nil {
		return nil, err
	}
	mines, err := c.dimension(ctx, c.settings.Mines, Bound{
		Name:   "number of mines",
		Prompt: "How many mines do you want on the field",
		Min:    models.MinMines,
		Max:    models.MaxMines(width, height),
	})
	if err != nil {
		return nil, err
	}

	board, err := models.NewBoard(width, height, mines, c.settings.boardOptions()...)
	if err != nil {
		return nil, err
	}
	if !board.SafeFirstReveal() {
		if err := board.Generate(); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("Created board", "width", width, "height", height, "mines", mines,
		"seed", c.settings.Seed, "safeFirstReveal", c.settings.SafeFirstReveal)
	return board, nil
}

// dimension uses the preset value when there is one and asks otherwise.
func (c *Controller) dimension(ctx context.Context, preset int, bound Bound) (int, error) {
	if preset == 0 {
		return c.input.ReadBoundedInt(ctx, bound)
	}
	if !bound.Contains(preset) {
		return 0, fmt.Errorf("%w: %s must be in [%d, %d], got %d", ErrInvalidConfig, bound.Name, bound.Min, bound.Max, preset)
	}
	return preset, nil
}

// playTurn reads actions until one lands on the board. Rejected cell
// actions still use up the turn.
func (c *Controller) playTurn(ctx context.Context, board *models.Board) error {
	for {
		action, err := c.input.ReadAction(ctx)
		if errors.Is(err, ErrInputFormat) {
			c.logger.Debug("Rejected input", "error", err)
			c.renderer.Notify(fmt.Sprintf("Error: %v!", err))
			continue
		}
		if err != nil {
			return err
		}

		if !board.InBounds(action.X, action.Y) {
			err := fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, action.X+1, action.Y+1)
			c.logger.Debug("Rejected action", "error", err)
			c.renderer.Notify("Error: wrong coordinates!")
			continue
		}

		c.logger.Debug("Action", "kind", action.Kind, "x", action.X, "y", action.Y)
		err = c.apply(board, action)
		switch {
		case err == nil:
		case errors.Is(err, models.ErrCellFlagged):
			c.renderer.Notify("This cell is flagged!")
		case errors.Is(err, models.ErrCellRevealed):
			c.renderer.Notify("This cell has already been explored!")
		case errors.Is(err, ErrInputFormat):
			c.renderer.Notify("Error: wrong command!")
		default:
			return err
		}
		return nil
	}
}

func (c *Controller) apply(board *models.Board, action Action) error {
	switch action.Kind {
	case ActionFlag:
		return board.FlagCell(action.X, action.Y)
	case ActionReveal:
		return board.RevealCell(action.X, action.Y)
	default:
		return fmt.Errorf("%w: unknown action %v", ErrInputFormat, action.Kind)
	}
}
