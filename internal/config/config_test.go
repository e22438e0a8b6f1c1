package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"bad version", func(c *Config) { c.Version = 2 }, "version"},
		{"bad units", func(c *Config) { c.Units = "furlongs" }, "units"},
		{"bad output format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"bad log format", func(c *Config) { c.Logging.Format = "pretty" }, "logging.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			cerr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("error type = %T, want *ConfigError", err)
			}
			if cerr.Field != tt.wantField {
				t.Errorf("error field = %q, want %q", cerr.Field, tt.wantField)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Units != "metric" || cfg.Output.Format != "text" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging level = %q, want info", cfg.Logging.Level)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Units = "imperial"
	cfg.Output.Format = "json"
	cfg.Export.Compress = true
	if err := cfg.Save(root); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, ".pwh", "config.json")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Units != "imperial" {
		t.Errorf("units = %q, want imperial", loaded.Units)
	}
	if loaded.Output.Format != "json" {
		t.Errorf("output format = %q, want json", loaded.Output.Format)
	}
	if !loaded.Export.Compress {
		t.Error("export compress flag lost")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PWH_OUTPUT_FORMAT", "json")
	t.Setenv("PWH_LOGGING_LEVEL", "debug")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("output format = %q, want env override json", cfg.Output.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging level = %q, want env override debug", cfg.Logging.Level)
	}
}
