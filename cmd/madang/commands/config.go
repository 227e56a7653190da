package commands

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config carries CLI defaults, loaded from madang.yaml with environment
// overrides (MADANG_SEED, MADANG_FRAMES, MADANG_PREFER_PATCH,
// MADANG_LOG_LEVEL). Flags still win over both.
type Config struct {
	Seed        int64  `yaml:"seed"`
	Frames      int    `yaml:"frames"`
	PreferPatch bool   `yaml:"prefer_patch"`
	LogLevel    string `yaml:"log_level"`
	RuntimePath string `yaml:"runtime"`
}

var currentConfig = defaultConfig()

func defaultConfig() *Config {
	return &Config{Frames: 1, LogLevel: "info"}
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if path == "" {
		path = "madang.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("reading config: %w", err)
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MADANG_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("MADANG_FRAMES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Frames = n
		}
	}
	if v := os.Getenv("MADANG_PREFER_PATCH"); v != "" {
		cfg.PreferPatch = v == "1" || v == "true"
	}
	if v := os.Getenv("MADANG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MADANG_RUNTIME"); v != "" {
		cfg.RuntimePath = v
	}
}
