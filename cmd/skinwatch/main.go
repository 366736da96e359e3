package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"skinwatch/cmd/skinwatch/commands"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("skinwatch"),
		kong.Description("A skinnable desktop clock and stopwatch."),
		kong.UsageOnError(),
	)

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		slog.Warn("Cannot load .env file", "error", envErr)
	}

	err := ctx.Run(&commands.Global{Logger: slog.Default(), Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
