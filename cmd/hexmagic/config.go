package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the resolved runtime settings.
type Config struct {
	// LayoutPath is the default layout file when --layout is not given.
	LayoutPath string

	// TraceFile enables per-directive trace logging when set.
	TraceFile string

	// LogLevel controls zap verbosity; empty means silent.
	LogLevel string
}

// hexmagic config.toml key mapping to runtime settings.
type fileConfig struct {
	LayoutPath string `toml:"layout_path"`
	TraceFile  string `toml:"trace_file"`
	LogLevel   string `toml:"log_level"`
}

// defaultConfigPath is checked when --config is not given.
const defaultConfigPath = "hexmagic.toml"

// Global flags bound in init.
var (
	configPath string
	layoutPath string
	logLevel   string
)

// resolveConfig loads the config file (if any) and applies flag
// overrides. Flags always win over file values.
func resolveConfig() (Config, error) {
	cfg := Config{}

	path := configPath
	if path == "" {
		path = findConfig()
	}

	if path != "" {
		loaded, err := loadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	if layoutPath != "" {
		cfg.LayoutPath = layoutPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// findConfig looks for a config file in the working directory, then in
// the user config directory. Returns "" when neither exists.
func findConfig() string {
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "hexmagic", "config.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadConfig reads a TOML config file with default overlay.
func loadConfig(path string) (Config, error) {
	cfg := Config{}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("layout_path") {
		cfg.LayoutPath = strings.TrimSpace(raw.LayoutPath)
	}
	if meta.IsDefined("trace_file") {
		cfg.TraceFile = strings.TrimSpace(raw.TraceFile)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	return cfg, nil
}
