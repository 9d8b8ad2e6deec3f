package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all application configuration
type Config struct {
	ServerAddr string          `json:"-"`
	DataPath   string          `json:"-"`
	Logging    LoggingConfig   `json:"logging"`
	Generator  GeneratorConfig `json:"generator"`
}

// LoggingConfig selects the log level and encoder
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // console or json
}

// GeneratorConfig holds the defaults and limits for generated dungeons
type GeneratorConfig struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Theme     string `json:"theme"`
	MaxWidth  int    `json:"max_width"`
	MaxHeight int    `json:"max_height"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		ServerAddr: ":8080",
		DataPath:   "data",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Generator: GeneratorConfig{
			Width:     60,
			Height:    40,
			Theme:     "dungeon",
			MaxWidth:  200,
			MaxHeight: 200,
		},
	}
}

// Load reads the environment and the optional generator.json in the data
// directory. A missing file leaves the defaults in place.
func Load() (*Config, error) {
	cfg := Default()

	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		cfg.ServerAddr = addr
	}
	if path := os.Getenv("DATA_PATH"); path != "" {
		cfg.DataPath = path
	}

	if err := cfg.loadFile(filepath.Join(cfg.DataPath, "generator.json")); err != nil {
		return nil, err
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges the JSON file at path over the current values
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Validate checks that the generator defaults fit inside the limits
func (c *Config) Validate() error {
	g := c.Generator
	if g.MaxWidth <= 0 || g.MaxHeight <= 0 {
		return fmt.Errorf("generator limits must be positive, got %dx%d", g.MaxWidth, g.MaxHeight)
	}
	if g.Width <= 0 || g.Height <= 0 || g.Width > g.MaxWidth || g.Height > g.MaxHeight {
		return fmt.Errorf("default size %dx%d outside 1..%dx%d", g.Width, g.Height, g.MaxWidth, g.MaxHeight)
	}
	return nil
}
