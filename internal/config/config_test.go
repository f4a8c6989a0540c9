package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/khanglvm/quickfind/internal/search"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Search != search.DefaultOptions() {
		t.Errorf("search options = %+v, want defaults", cfg.Search)
	}
	if !cfg.HistoryEnabled() {
		t.Error("history should be enabled by default")
	}
	if cfg.History.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want 30", cfg.History.RetentionDays)
	}
	if got := cfg.History.Retention(); got != 30*24*time.Hour {
		t.Errorf("Retention() = %v", got)
	}
}

func TestRetentionZero(t *testing.T) {
	var h *HistoryConfig
	if h.Retention() != 0 {
		t.Error("nil history should keep everything")
	}
	if (&HistoryConfig{RetentionDays: -1}).Retention() != 0 {
		t.Error("negative retention should keep everything")
	}
}

func TestLoadFromMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  "catalog": "items.jsonl",
  "search": {"maxResults": 5, "fullScan": true},
  "history": {"retentionDays": 7}
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Catalog != "items.jsonl" {
		t.Errorf("Catalog = %q", cfg.Catalog)
	}
	if cfg.Search.MaxResults != 5 || !cfg.Search.FullScan {
		t.Errorf("search overrides not applied: %+v", cfg.Search)
	}
	if cfg.Search.MinScore != search.DefaultOptions().MinScore {
		t.Errorf("MinScore = %v, want default", cfg.Search.MinScore)
	}
	if !cfg.Search.SuggestTypos {
		t.Error("SuggestTypos default lost")
	}
	if !cfg.History.Enabled {
		t.Error("history.enabled default lost")
	}
	if cfg.History.RetentionDays != 7 {
		t.Errorf("RetentionDays = %d, want 7", cfg.History.RetentionDays)
	}
}

func TestLoadFromNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := LoadFrom(path)
	var notFound *ConfigNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ConfigNotFoundError, got %v", err)
	}
	if !strings.Contains(err.Error(), "quickfind config init") {
		t.Errorf("error should carry init hint: %v", err)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		section string
	}{
		{"malformed json", `{"search": `, ""},
		{"negative max results", `{"search": {"maxResults": -1}}`, SectionSearch},
		{"min score out of range", `{"search": {"minScore": 1.5}}`, SectionSearch},
		{"negative retention", `{"history": {"retentionDays": -3}}`, SectionHistory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadFrom(path)
			var invalid *InvalidConfigError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidConfigError, got %v", err)
			}
			if invalid.Section != tt.section {
				t.Errorf("Section = %q, want %q", invalid.Section, tt.section)
			}
			if tt.section != "" {
				if !strings.Contains(err.Error(), `(section "`+tt.section+`")`) {
					t.Errorf("error should name the section: %v", err)
				}
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected wrapped ValidationError, got %v", err)
				}
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv(HistoryEnv, "")
	os.Unsetenv(HistoryEnv)

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.Search != search.DefaultOptions() {
		t.Error("missing file should yield defaults")
	}
	if !cfg.HistoryEnabled() {
		t.Error("history should default to enabled")
	}
}

func TestLoadOrDefaultPropagatesInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadOrDefault(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestHistoryEnvOverride(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"false", false},
		{"0", false},
		{"true", true},
		{"garbage", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(HistoryEnv, tt.value)

			cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"))
			if err != nil {
				t.Fatal(err)
			}
			if cfg.HistoryEnabled() != tt.want {
				t.Errorf("HistoryEnabled() = %v, want %v", cfg.HistoryEnabled(), tt.want)
			}
		})
	}
}

func TestApplyEnvWithoutHistorySection(t *testing.T) {
	t.Setenv(HistoryEnv, "true")

	cfg := &Config{}
	cfg.ApplyEnv()
	if !cfg.HistoryEnabled() {
		t.Error("env should create and enable history section")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/catalog.jsonl", filepath.Join(home, "catalog.jsonl")},
		{"/abs/path", "/abs/path"},
		{"rel/~/path", "rel/~/path"},
		{"~user/x", "~user/x"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetDefaultConfigPath(t *testing.T) {
	path, err := GetDefaultConfigPath()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if filepath.Base(path) != ".quickfind.json" {
		t.Errorf("unexpected default path %q", path)
	}
}
