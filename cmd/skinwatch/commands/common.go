package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"skinwatch/internal/core/model"
	"skinwatch/internal/core/timekeeper"
	"skinwatch/internal/savedata"
	"skinwatch/internal/storage"
)

const defaultSettingsFile = "skinwatch.yaml"

// Global is passed to every command's Run method.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging" env:"SKINWATCH_VERBOSE"`

	Run   RunCmd   `cmd:"" default:"withargs" help:"Show the watch (default command)"`
	Init  InitCmd  `cmd:"" help:"Write a starter settings file"`
	Check CheckCmd `cmd:"" help:"Validate a settings file and print its skin tables"`
	Dump  DumpCmd  `cmd:"" help:"Print the contents of a save file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// loadWatchConfig reads settingsPath and validates it.
func loadWatchConfig(settingsPath string) (storage.Settings, model.WatchConfig, error) {
	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		return storage.Settings{}, model.WatchConfig{}, err
	}
	config, err := settings.WatchConfig()
	if err != nil {
		return storage.Settings{}, model.WatchConfig{}, fmt.Errorf("invalid settings %s: %w", settingsPath, err)
	}
	return settings, config, nil
}

// initialState restores the save file or falls back to the configured
// default mode with a zeroed stopwatch.
func initialState(store *storage.SaveStore, config model.WatchConfig) timekeeper.State {
	record, ok := store.Load()
	if !ok {
		return timekeeper.State{Mode: config.DefaultMode}
	}
	return timekeeper.State{
		Mode:          record.Mode,
		StopwatchTime: record.StopwatchTime,
		SavedTime:     record.SavedTime,
	}
}

func recordOf(state timekeeper.State) savedata.Record {
	return savedata.Record{
		Mode:          state.Mode,
		StopwatchTime: state.StopwatchTime,
		SavedTime:     state.SavedTime,
	}
}
