package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimaq12/termsweeper/game"
)

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termsweeper.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
board {
  width = 20
  height = 20
  mines = 50
}
ui {
  log_level = "info"
}
`), 0o644))

	cfg, err := loadConfig(&Globals{Config: path, LogLevel: "debug"}, BoardFlags{Width: 10, Seed: 7, SafeFirstReveal: true})
	require.NoError(t, err)

	assert.Equal(t, game.BoardSettings{Width: 10, Height: 20, Mines: 50, Seed: 7, SafeFirstReveal: true}, cfg.Board)
	assert.Equal(t, "debug", cfg.UI.LogLevel)
}

func TestLoadConfigRejectsBadFlags(t *testing.T) {
	_, err := loadConfig(&Globals{Config: filepath.Join(t.TempDir(), "none.hcl")}, BoardFlags{Width: 8, Height: 8, Mines: 60})
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestSetupLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")

	logger, closeLog, err := setupLogger(game.UISettings{LogLevel: "info", LogFile: path}, true)
	require.NoError(t, err)
	logger.Info("Created board", "width", 8)
	logger.Debug("hidden")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Created board")
	assert.NotContains(t, string(data), "hidden")
}

func TestSetupLoggerRejectsLevel(t *testing.T) {
	_, _, err := setupLogger(game.UISettings{LogLevel: "chatty"}, false)
	assert.Error(t, err)
}
