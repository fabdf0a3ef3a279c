// Package config defines the CLI configuration structure.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/yndnr/shurlty-go/internal/storage"
	"github.com/yndnr/shurlty-go/internal/telemetry/logger"
)

// DefaultBaseURL is the API location used when nothing else is configured.
const DefaultBaseURL = "http://localhost:8080"

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// CLIConfig is the configuration for shurlty-cli.
type CLIConfig struct {
	API     APIConfig      `koanf:"api" yaml:"api"`
	Storage storage.Config `koanf:"storage" yaml:"storage"`
	Output  string         `koanf:"output" yaml:"output"` // table, json, yaml
	Log     logger.Config  `koanf:"log" yaml:"log"`
}

// APIConfig describes how to reach the shortener backend.
type APIConfig struct {
	BaseURL string `koanf:"base_url" yaml:"base_url"`

	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration `koanf:"timeout" yaml:"timeout,omitempty"`

	// CAFile is an extra PEM bundle trusted in addition to system roots.
	CAFile string `koanf:"ca_file" yaml:"ca_file,omitempty"`

	// RateLimit caps outgoing requests per second. Zero disables throttling.
	RateLimit float64 `koanf:"rate_limit" yaml:"rate_limit,omitempty"`
	RateBurst int     `koanf:"rate_burst" yaml:"rate_burst,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Storage: storage.Config{
			Backend: storage.BackendFile,
			Dir:     DefaultDir(),
		},
		Output: OutputTable,
		Log:    logger.DefaultConfig(),
	}
}

// DefaultDir returns ~/.shurlty, the home of all client state.
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".shurlty"
	}
	return filepath.Join(homeDir, ".shurlty")
}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), "cli.yaml")
}

// HistoryPath returns the REPL history file location.
func (c *CLIConfig) HistoryPath() string {
	return filepath.Join(c.Storage.Dir, "history")
}
