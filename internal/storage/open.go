package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendBadger = "badger"
)

// File names under Config.Dir.
const (
	stateFileName = "state.json"
	stateDBName   = "state.db"
)

// Config selects and locates a token store backend.
type Config struct {
	// Backend is one of "memory", "file", "badger". Default: "file".
	Backend string `koanf:"backend" yaml:"backend"`

	// Dir is the directory holding the state file or database.
	Dir string `koanf:"dir" yaml:"dir"`
}

// StatePath returns the location of the persisted state for cfg.
// It is empty for the memory backend.
func (c Config) StatePath() string {
	switch strings.ToLower(c.Backend) {
	case BackendMemory:
		return ""
	case BackendBadger:
		return filepath.Join(c.Dir, stateDBName)
	default:
		return filepath.Join(c.Dir, stateFileName)
	}
}

// Open creates the backend described by cfg.
func Open(cfg Config, logger *slog.Logger) (Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch strings.ToLower(cfg.Backend) {
	case BackendMemory:
		return NewMemoryTokenStore(), nil
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("storage: dir is required for file backend")
		}
		return NewFileTokenStore(cfg.StatePath(), logger)
	case BackendBadger:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("storage: dir is required for badger backend")
		}
		return NewBadgerTokenStore(cfg.StatePath(), logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
