package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "http://localhost:8080")
	}
	if cfg.API.Timeout != 0 {
		t.Errorf("API.Timeout = %v, want no timeout", cfg.API.Timeout)
	}
	if cfg.Output != OutputTable {
		t.Errorf("Output = %q, want %q", cfg.Output, OutputTable)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("Storage.Backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if !strings.HasSuffix(path, filepath.Join(".shurlty", "cli.yaml")) {
		t.Errorf("DefaultConfigPath() = %q, should end with .shurlty/cli.yaml", path)
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := Default()
	cfg.Storage.Dir = "/tmp/sh"
	if got := cfg.HistoryPath(); got != filepath.Join("/tmp/sh", "history") {
		t.Errorf("HistoryPath() = %q", got)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if err != nil {
		t.Fatalf("Load should not error for nonexistent file: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want default", cfg.API.BaseURL)
	}
}

func TestLoad_Layers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	content := `api:
  base_url: https://file.sho.rt
  timeout: 10s
output: json
storage:
  backend: badger
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("SHURLTY_OUTPUT", "yaml")

	cfg, err := Load(path, map[string]any{"api.base_url": "https://flag.sho.rt"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://flag.sho.rt" {
		t.Errorf("API.BaseURL = %q, flag should win", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.Output != OutputYAML {
		t.Errorf("Output = %q, env should override file", cfg.Output)
	}
	if cfg.Storage.Backend != "badger" {
		t.Errorf("Storage.Backend = %q, want badger", cfg.Storage.Backend)
	}
	if cfg.Storage.Dir != DefaultDir() {
		t.Errorf("Storage.Dir = %q, default should survive", cfg.Storage.Dir)
	}
}

func TestLoad_EnvBaseURL(t *testing.T) {
	t.Setenv("SHURLTY_API_BASE_URL", "http://env.sho.rt:9000")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://env.sho.rt:9000" {
		t.Errorf("API.BaseURL = %q, want env value", cfg.API.BaseURL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte("output: xml\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path, nil); err == nil {
		t.Error("Load() should reject unknown output format")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "cli.yaml")

	cfg := Default()
	cfg.API.BaseURL = "https://sho.rt"
	cfg.API.Timeout = 3 * time.Second
	cfg.Output = OutputJSON

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config perm = %o, want 600", perm)
	}

	loaded, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.API.BaseURL != "https://sho.rt" {
		t.Errorf("API.BaseURL = %q after round trip", loaded.API.BaseURL)
	}
	if loaded.API.Timeout != 3*time.Second {
		t.Errorf("API.Timeout = %v after round trip", loaded.API.Timeout)
	}
	if loaded.Output != OutputJSON {
		t.Errorf("Output = %q after round trip", loaded.Output)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
		check      func(*CLIConfig) bool
	}{
		{"api.base_url", "https://sho.rt", false, func(c *CLIConfig) bool { return c.API.BaseURL == "https://sho.rt" }},
		{"api.timeout", "2s", false, func(c *CLIConfig) bool { return c.API.Timeout == 2*time.Second }},
		{"api.timeout", "soon", true, nil},
		{"api.rate_limit", "2.5", false, func(c *CLIConfig) bool { return c.API.RateLimit == 2.5 }},
		{"api.rate_burst", "x", true, nil},
		{"storage.backend", "memory", false, func(c *CLIConfig) bool { return c.Storage.Backend == "memory" }},
		{"storage.backend", "sqlite", true, nil},
		{"output", "yaml", false, func(c *CLIConfig) bool { return c.Output == "yaml" }},
		{"output", "csv", true, nil},
		{"log.level", "debug", false, func(c *CLIConfig) bool { return c.Log.Level == "debug" }},
		{"api.base_url", " ", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := Default()
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Set(%q, %q) did not apply", tt.key, tt.value)
			}
		})
	}
}

func TestSet_UnknownKey(t *testing.T) {
	cfg := Default()
	if err := cfg.Set("server.address", "x"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set() error = %v, want ErrUnknownKey", err)
	}
}

func TestLoadFile_IgnoresEnv(t *testing.T) {
	t.Setenv("SHURLTY_API_BASE_URL", "http://env.sho.rt:9000")
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte("output: json\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, env must not leak into the file view", cfg.API.BaseURL)
	}

	missing, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile(missing) error = %v", err)
	}
	if missing.Output != OutputTable {
		t.Errorf("Output = %q, want default", missing.Output)
	}
}
