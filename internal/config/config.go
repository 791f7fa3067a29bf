package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variable names before they are
// mapped onto config keys.
const EnvPrefix = "COUNTEDLIST_"

// Config holds all runtime configuration.
type Config struct {
	// Variant selects the counting strategy: delegation or inheritance.
	Variant string `koanf:"variant"`

	// Synchronized wraps the list in a mutex-guarded adapter.
	Synchronized bool `koanf:"synchronized"`

	// Operational
	LogLevel        string `koanf:"log_level"`
	LogFormat       string `koanf:"log_format"`
	DataDir         string `koanf:"data_dir"`
	MetricsTextfile string `koanf:"metrics_textfile"` // "" = disabled
}

// defaults is the lowest-priority layer.
var defaults = map[string]any{
	"variant":          "delegation",
	"synchronized":     false,
	"log_level":        "info",
	"log_format":       "json",
	"data_dir":         ".countedlist",
	"metrics_textfile": "",
}

var validVariants = map[string]bool{"delegation": true, "inheritance": true}

// Load reads configuration from (lowest → highest priority):
//  1. Built-in defaults
//  2. YAML file at COUNTEDLIST_CONFIG_FILE (if set)
//  3. COUNTEDLIST_* environment variables
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if cfgFile := os.Getenv(EnvPrefix + "CONFIG_FILE"); cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %s: %w", cfgFile, err)
		}
	}

	// Transform: "COUNTEDLIST_DATA_DIR" → "data_dir".
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Normalize lower-cases and trims the enumerated string fields.
func (c *Config) Normalize() {
	c.Variant = strings.TrimSpace(strings.ToLower(c.Variant))
	c.LogLevel = strings.TrimSpace(strings.ToLower(c.LogLevel))
	c.LogFormat = strings.TrimSpace(strings.ToLower(c.LogFormat))
	c.DataDir = strings.TrimSpace(c.DataDir)
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []string

	if !validVariants[c.Variant] {
		errs = append(errs, fmt.Sprintf("VARIANT must be delegation or inheritance (got %q)", c.Variant))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be json or text (got %q)", c.LogFormat))
	}

	if c.DataDir == "" {
		errs = append(errs, "DATA_DIR is required")
	}
	// DataDir path sanitisation: reject traversal sequences and null bytes.
	if strings.Contains(c.DataDir, "..") {
		errs = append(errs, `DATA_DIR must not contain ".." (directory traversal)`)
	}
	if strings.ContainsRune(c.DataDir, 0) {
		errs = append(errs, "DATA_DIR must not contain null bytes")
	}
	if strings.ContainsRune(c.MetricsTextfile, 0) {
		errs = append(errs, "METRICS_TEXTFILE must not contain null bytes")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d configuration error(s):\n  - %s", len(errs), strings.Join(errs, "\n  - "))
	}
	return nil
}
