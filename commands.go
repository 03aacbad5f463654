package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dimaq12/termsweeper/game"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" help:"Path to an HCL config file" default:"termsweeper.hcl" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error)"`
	LogFile  string `help:"Write logs to this file instead of stderr"`
}

// BoardFlags override the board block of the config file.
type BoardFlags struct {
	Width           int   `short:"W" help:"Width of the field [8, 30]"`
	Height          int   `short:"H" help:"Height of the field [8, 24]"`
	Mines           int   `short:"m" help:"Number of mines [1, (width-1)*(height-1)]"`
	Seed            int64 `help:"Seed for mine placement (0 picks one from the clock)"`
	SafeFirstReveal bool  `help:"Place mines after the first reveal so it never hits one"`
}

type PlayCmd struct {
	Board   BoardFlags `embed:""`
	NoColor bool       `help:"Disable coloured output"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, c.Board)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogger(cfg.UI, false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := setupSignalHandler(logger)
	defer stop()

	input := game.NewConsoleInput(os.Stdin, os.Stdout)
	defer input.Close()
	renderer := game.NewConsoleRenderer(os.Stdout, c.NoColor || cfg.UI.NoColor)
	controller := game.NewController(input, renderer, cfg.Board, game.WithLogger(logger))

	_, err = controller.Run(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		logger.Info("Session ended before the game was over", "reason", err)
		return nil
	}
	return err
}

type TuiCmd struct {
	Board BoardFlags `embed:""`
}

func (c *TuiCmd) Run(g *Globals) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tui needs an interactive terminal, use play instead")
	}

	cfg, err := loadConfig(g, c.Board)
	if err != nil {
		return err
	}
	settings := cfg.Board.WithDefaults()

	// stderr output would tear the screen, so log to a file or nowhere
	logger, closeLog, err := setupLogger(cfg.UI, true)
	if err != nil {
		return err
	}
	defer closeLog()

	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if settings.Width > width || settings.Height+1 > height {
			logger.Warn("Board is larger than the terminal", "board", fmt.Sprintf("%dx%d", settings.Width, settings.Height),
				"terminal", fmt.Sprintf("%dx%d", width, height))
		}
	}

	service, err := game.NewMinesweeperService(settings, game.WithLogger(logger))
	if err != nil {
		return err
	}
	state, err := service.Run()
	if err != nil {
		return err
	}

	fmt.Println(service.StatusText())
	logger.Info("Left the game", "state", state)
	return nil
}

// loadConfig reads the config file and applies flag overrides on top.
func loadConfig(g *Globals, flags BoardFlags) (*game.Config, error) {
	cfg, err := game.LoadConfig(g.Config)
	if err != nil {
		return nil, err
	}

	if flags.Width != 0 {
		cfg.Board.Width = flags.Width
	}
	if flags.Height != 0 {
		cfg.Board.Height = flags.Height
	}
	if flags.Mines != 0 {
		cfg.Board.Mines = flags.Mines
	}
	if flags.Seed != 0 {
		cfg.Board.Seed = flags.Seed
	}
	if flags.SafeFirstReveal {
		cfg.Board.SafeFirstReveal = true
	}
	if g.LogLevel != "" {
		cfg.UI.LogLevel = g.LogLevel
	}
	if g.LogFile != "" {
		cfg.UI.LogFile = g.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
