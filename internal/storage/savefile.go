package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"skinwatch/internal/logfields"
	"skinwatch/internal/savedata"
)

// SaveStore reads and writes the save file.
type SaveStore struct {
	path    string
	logger  *slog.Logger
	encoder savedata.Encoder
}

// NewSaveStore creates a store for the save file at path.
func NewSaveStore(path string, logger *slog.Logger) *SaveStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaveStore{path: path, logger: logger}
}

// Path returns the save file location.
func (store *SaveStore) Path() string {
	return store.path
}

// Load returns the saved record. A missing, unreadable or corrupted file
// reports false so the caller starts from defaults.
func (store *SaveStore) Load() (savedata.Record, bool) {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			store.logger.Warn("Cannot read save file, using defaults",
				logfields.Path(store.path), logfields.Error(err))
		}
		return savedata.Record{}, false
	}

	record, err := savedata.DecodeErr(rawData)
	if err != nil {
		store.logger.Warn("Save file is corrupted, using defaults",
			logfields.Path(store.path), logfields.Error(err))
		return savedata.Record{}, false
	}
	return record, true
}

// Save writes record through a temporary file and renames it into place.
func (store *SaveStore) Save(record savedata.Record) error {
	data := store.encoder.Encode(record)

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}

	tempPath := store.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	if err := os.Rename(tempPath, store.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace save file: %w", err)
	}

	store.logger.Debug("Saved watch state", logfields.Path(store.path),
		logfields.Mode(string(record.Mode.Persisted())))
	return nil
}
