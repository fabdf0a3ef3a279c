package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/shurlty-go/internal/infra/confloader"
	"github.com/yndnr/shurlty-go/internal/storage"
)

// ErrUnknownKey is returned by Set for keys outside the schema.
var ErrUnknownKey = errors.New("unknown config key")

// Keys lists the settable configuration keys.
var Keys = []string{
	"api.base_url",
	"api.timeout",
	"api.ca_file",
	"api.rate_limit",
	"api.rate_burst",
	"storage.backend",
	"storage.dir",
	"output",
	"log.level",
	"log.format",
}

// Load builds the configuration from defaults, the YAML file at path,
// SHURLTY_* environment variables and finally flags (dotted keys).
// A missing file is not an error.
func Load(path string, flags map[string]any) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Default()
	l := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := l.Load(cfg); err != nil {
		return nil, err
	}

	if len(flags) > 0 {
		if err := l.LoadMap(flags); err != nil {
			return nil, err
		}
		if err := l.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal flags: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the defaults overlaid with the file at path only.
// Environment variables and flags are ignored so the result can be saved
// back without capturing them.
func LoadFile(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	l := confloader.NewLoader()
	if err := l.LoadFile(path); err != nil {
		return nil, err
	}
	if err := l.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as YAML with 0600 permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cli-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close config: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// Validate checks enumerated and required fields.
func (c *CLIConfig) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url must not be empty")
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("output must be one of table, json, yaml (got %q)", c.Output)
	}
	switch strings.ToLower(c.Storage.Backend) {
	case storage.BackendMemory, storage.BackendFile, storage.BackendBadger:
	default:
		return fmt.Errorf("storage.backend must be one of memory, file, badger (got %q)", c.Storage.Backend)
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must not be negative")
	}
	if c.API.RateLimit < 0 || c.API.RateBurst < 0 {
		return errors.New("api.rate_limit and api.rate_burst must not be negative")
	}
	return nil
}

// Set assigns value to a dotted key, parsing it for the field type.
func (c *CLIConfig) Set(key, value string) error {
	switch key {
	case "api.base_url":
		c.API.BaseURL = value
	case "api.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("api.timeout: %w", err)
		}
		c.API.Timeout = d
	case "api.ca_file":
		c.API.CAFile = value
	case "api.rate_limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("api.rate_limit: %w", err)
		}
		c.API.RateLimit = f
	case "api.rate_burst":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("api.rate_burst: %w", err)
		}
		c.API.RateBurst = n
	case "storage.backend":
		c.Storage.Backend = value
	case "storage.dir":
		c.Storage.Dir = value
	case "output":
		c.Output = value
	case "log.level":
		c.Log.Level = value
	case "log.format":
		c.Log.Format = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}
