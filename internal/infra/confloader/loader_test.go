package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	API struct {
		BaseURL string `koanf:"base_url"`
		Timeout string `koanf:"timeout"`
	} `koanf:"api"`
	Storage struct {
		Backend string `koanf:"backend"`
	} `koanf:"storage"`
	Output string `koanf:"output"`
}

func unmarshal(t *testing.T, l *Loader) testConfig {
	t.Helper()
	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return cfg
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
	if l.filePath != "" {
		t.Errorf("filePath = %q, want empty", l.filePath)
	}

	l = NewLoader(WithEnvPrefix("OTHER_"), WithConfigFile("/tmp/cli.yaml"))
	if l.envPrefix != "OTHER_" {
		t.Errorf("envPrefix = %q, want OTHER_", l.envPrefix)
	}
	if l.filePath != "/tmp/cli.yaml" {
		t.Errorf("filePath = %q, want /tmp/cli.yaml", l.filePath)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	content := "api:\n  base_url: https://sho.rt\noutput: json\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	l := NewLoader()
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	cfg := unmarshal(t, l)
	if got := cfg.API.BaseURL; got != "https://sho.rt" {
		t.Errorf("api.base_url = %q, want https://sho.rt", got)
	}
	if got := cfg.Output; got != "json" {
		t.Errorf("output = %q, want json", got)
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile("/nonexistent/cli.yaml"); err == nil {
		t.Error("LoadFile() should return error for nonexistent file")
	}
}

func TestLoader_LoadFile_Empty(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("SHURLTY_API_BASE_URL", "http://127.0.0.1:9000")
	t.Setenv("SHURLTY_OUTPUT", "yaml")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	cfg := unmarshal(t, l)
	if got := cfg.API.BaseURL; got != "http://127.0.0.1:9000" {
		t.Errorf("api.base_url = %q, want http://127.0.0.1:9000", got)
	}
	if got := cfg.Output; got != "yaml" {
		t.Errorf("output = %q, want yaml", got)
	}
}

func TestLoader_LoadEnv_CustomPrefix(t *testing.T) {
	t.Setenv("MYAPP_STORAGE_BACKEND", "memory")

	l := NewLoader(WithEnvPrefix("MYAPP_"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	cfg := unmarshal(t, l)
	if got := cfg.Storage.Backend; got != "memory" {
		t.Errorf("storage.backend = %q, want memory", got)
	}
}

func TestLoader_EnvKey(t *testing.T) {
	l := NewLoader()
	tests := map[string]string{
		"SHURLTY_API_BASE_URL":   "api.base_url",
		"SHURLTY_API_RATE_BURST": "api.rate_burst",
		"SHURLTY_LOG_LEVEL":      "log.level",
		"SHURLTY_OUTPUT":         "output",
	}
	for in, want := range tests {
		if got := l.envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()
	data := map[string]any{
		"api.base_url": "http://localhost:3000",
		"output":       "table",
	}
	if err := l.LoadMap(data); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	cfg := unmarshal(t, l)
	if got := cfg.API.BaseURL; got != "http://localhost:3000" {
		t.Errorf("api.base_url = %q, want http://localhost:3000", got)
	}
	if got := cfg.Output; got != "table" {
		t.Errorf("output = %q, want table", got)
	}
}

func TestLoader_Load_MissingFileSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg := testConfig{}
	cfg.API.BaseURL = "http://localhost:8080"

	l := NewLoader(WithConfigFile(path))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q, want default preserved", cfg.API.BaseURL)
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	content := "api:\n  base_url: http://file:8080\n  timeout: 5s\noutput: json\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("SHURLTY_API_BASE_URL", "http://env:8080")

	l := NewLoader(WithConfigFile(path))
	cfg := testConfig{}
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://env:8080" {
		t.Errorf("BaseURL = %q, env should override file", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != "5s" {
		t.Errorf("Timeout = %q, want 5s from file", cfg.API.Timeout)
	}

	// Flags are layered last.
	if err := l.LoadMap(map[string]any{"api.base_url": "http://flag:8080"}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.API.BaseURL != "http://flag:8080" {
		t.Errorf("BaseURL = %q, flag should override env", cfg.API.BaseURL)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
}

func TestLoader_Load_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte("api: [unclosed"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	l := NewLoader(WithConfigFile(path))
	if err := l.Load(&testConfig{}); err == nil {
		t.Error("Load() should fail on malformed yaml")
	}
}
