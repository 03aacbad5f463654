package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" default:"withargs" help:"Play in the console (default)"`
	Tui     TuiCmd           `cmd:"" help:"Play in an interactive full-screen table"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("termsweeper"),
		kong.Description("Minesweeper for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
