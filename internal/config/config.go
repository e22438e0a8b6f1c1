package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete PWH configuration
type Config struct {
	Version int    `json:"version" mapstructure:"version"`
	Units   string `json:"units" mapstructure:"units"`

	Output  OutputConfig  `json:"output" mapstructure:"output"`
	Catalog CatalogConfig `json:"catalog" mapstructure:"catalog"`
	Export  ExportConfig  `json:"export" mapstructure:"export"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// OutputConfig controls how generator results are rendered
type OutputConfig struct {
	Format string `json:"format" mapstructure:"format"`
}

// CatalogConfig locates the standard parts catalog database
type CatalogConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// ExportConfig controls part bundle exports
type ExportConfig struct {
	Dir      string `json:"dir" mapstructure:"dir"`
	Compress bool   `json:"compress" mapstructure:"compress"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Units:   "metric",
		Output: OutputConfig{
			Format: "text",
		},
		Catalog: CatalogConfig{
			Path: filepath.Join(".pwh", "catalog.db"),
		},
		Export: ExportConfig{
			Dir:      "parts",
			Compress: false,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .pwh/config.json under root, falling
// back to defaults when no config file exists. PWH_* environment variables
// override file values (PWH_OUTPUT_FORMAT, PWH_LOGGING_LEVEL, ...).
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("units", "metric")
	v.SetDefault("output.format", "text")
	v.SetDefault("catalog.path", filepath.Join(".pwh", "catalog.db"))
	v.SetDefault("export.dir", "parts")
	v.SetDefault("export.compress", false)
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".pwh"))

	v.SetEnvPrefix("PWH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to .pwh/config.json under root
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".pwh")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Units != "metric" && c.Units != "imperial" {
		return &ConfigError{Field: "units", Message: "must be 'metric' or 'imperial'"}
	}
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return &ConfigError{Field: "output.format", Message: "must be 'text' or 'json'"}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be 'human' or 'json'"}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "must be one of debug, info, warn, error"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
