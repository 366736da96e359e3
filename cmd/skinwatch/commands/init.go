package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"skinwatch/internal/logfields"
	"skinwatch/resources"
)

// ErrSettingsExist indicates init would overwrite a settings file.
var ErrSettingsExist = errors.New("settings file already exists")

// InitCmd implements the 'init' command.
type InitCmd struct {
	Settings string `arg:"" optional:"" name:"settings-file" help:"Where to write the settings file" default:"skinwatch.yaml"`
	Force    bool   `help:"Overwrite an existing settings file"`
}

func (i *InitCmd) Run(global *Global) error {
	path := i.Settings
	if path == "" {
		path = defaultSettingsFile
	}

	if !i.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrSettingsExist, path)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}
	if err := os.WriteFile(path, resources.DefaultSettings(), 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	global.logger().Info("Wrote starter settings", logfields.Path(path))
	_, _ = fmt.Fprintf(global.out(), "Wrote %s\n", path)
	return nil
}
