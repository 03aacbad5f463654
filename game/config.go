package game

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/dimaq12/termsweeper/models"
)

// Board size used when nothing is configured and there is nobody to ask.
const (
	DefaultWidth  = 16
	DefaultHeight = 16
	DefaultMines  = 40
)

// Config is the complete game configuration
type Config struct {
	Board BoardSettings
	UI    UISettings
}

// BoardSettings describes the minefield. Zero width, height or mines means
// "not set"; the console asks the player for missing values.
type BoardSettings struct {
	Width           int   `hcl:"width,optional"`
	Height          int   `hcl:"height,optional"`
	Mines           int   `hcl:"mines,optional"`
	Seed            int64 `hcl:"seed,optional"` // 0 seeds from the clock
	SafeFirstReveal bool  `hcl:"safe_first_reveal,optional"`
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	NoColor  bool   `hcl:"no_color,optional"`
}

// both blocks are optional in the file
type fileConfig struct {
	Board *BoardSettings `hcl:"board,block"`
	UI    *UISettings    `hcl:"ui,block"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UISettings{
			LogLevel: "warn",
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()
	if filename == "" {
		return config, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return config, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if fc.Board != nil {
		config.Board = *fc.Board
	}
	if fc.UI != nil {
		config.UI = *fc.UI
		if config.UI.LogLevel == "" {
			config.UI.LogLevel = DefaultConfig().UI.LogLevel
		}
	}

	return config, nil
}

// Validate checks the configured values against the board bounds.
func (c *Config) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("%w: invalid log level: %s", ErrInvalidConfig, c.UI.LogLevel)
	}

	return nil
}

// Validate checks every value that is set. Mines are only checked against
// the size when both dimensions are known.
func (b BoardSettings) Validate() error {
	if b.Width != 0 && (b.Width < models.MinWidth || b.Width > models.MaxWidth) {
		return fmt.Errorf("%w: width must be in [%d, %d], got %d", ErrInvalidConfig, models.MinWidth, models.MaxWidth, b.Width)
	}
	if b.Height != 0 && (b.Height < models.MinHeight || b.Height > models.MaxHeight) {
		return fmt.Errorf("%w: height must be in [%d, %d], got %d", ErrInvalidConfig, models.MinHeight, models.MaxHeight, b.Height)
	}
	if b.Mines < 0 {
		return fmt.Errorf("%w: mines cannot be negative", ErrInvalidConfig)
	}
	if b.Mines != 0 && b.Width != 0 && b.Height != 0 {
		if maxMines := models.MaxMines(b.Width, b.Height); b.Mines > maxMines {
			return fmt.Errorf("%w: mines must be in [%d, %d], got %d", ErrInvalidConfig, models.MinMines, maxMines, b.Mines)
		}
	}
	return nil
}

// WithDefaults fills the unset size and mine count.
func (b BoardSettings) WithDefaults() BoardSettings {
	if b.Width == 0 {
		b.Width = DefaultWidth
	}
	if b.Height == 0 {
		b.Height = DefaultHeight
	}
	if b.Mines == 0 {
		b.Mines = min(DefaultMines, models.MaxMines(b.Width, b.Height))
	}
	return b
}

func (b BoardSettings) boardOptions() []models.Option {
	var opts []models.Option
	if b.Seed != 0 {
		opts = append(opts, models.WithSeed(b.Seed))
	}
	if b.SafeFirstReveal {
		opts = append(opts, models.WithSafeFirstReveal())
	}
	return opts
}
