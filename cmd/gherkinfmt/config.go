package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds gherkinfmt's file-based settings. Precedence: CLI flags >
// config file > these defaults.
type Config struct {
	Language   string `toml:"language"`
	StripColon bool   `toml:"strip_colon"`
	Output     string `toml:"output"` // "tree" or "json"
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
}

func defaultConfig() *Config {
	return &Config{
		Language:   "en",
		StripColon: os.Getenv("BEHAVE_STRIP_STEPS_WITH_TRAILING_COLON") == "yes",
		Output:     "tree",
		LogLevel:   "info",
		LogFormat:  "logfmt",
	}
}

// loadConfig layers a TOML config file (optional) on top of the defaults.
// Config file search order (first found wins): the explicit path, then
// ./.gherkinfmt.toml in the current directory.
func loadConfig(explicit string) (*Config, error) {
	cfg := defaultConfig()

	path := resolveConfigPath(explicit)
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(".gherkinfmt.toml"); err == nil {
		return ".gherkinfmt.toml"
	}
	return ""
}
