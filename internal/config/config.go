// Package config loads the application-level TOML configuration: logging,
// game session defaults, and save storage. Economy tuning lives in presets,
// not here.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Log  LogConfig  `toml:"log"`
	Game GameConfig `toml:"game"`
	Save SaveConfig `toml:"save"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type GameConfig struct {
	// Preset names a built-in preset, or a path to a YAML preset file when
	// it contains a path separator.
	Preset string `toml:"preset"`

	// Seed initializes the simulation RNG. Zero means derive from the
	// current time at session start.
	Seed int64 `toml:"seed"`

	// TickMillis is the host loop cadence.
	TickMillis int `toml:"tick_millis"`

	// RealMillisPerSimMinute is the wall-clock cost of one simulated minute.
	RealMillisPerSimMinute int `toml:"real_millis_per_sim_minute"`
}

type SaveConfig struct {
	// Path is the SQLite database file for session saves.
	Path string `toml:"path"`

	// AutosaveSeconds is the interval between automatic saves; zero
	// disables autosaving.
	AutosaveSeconds int `toml:"autosave_seconds"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  slog.LevelInfo,
			Format: "text",
		},
		Game: GameConfig{
			Preset:                 "normal",
			TickMillis:             100,
			RealMillisPerSimMinute: 300,
		},
		Save: SaveConfig{
			Path:            "vibecard.db",
			AutosaveSeconds: 30,
		},
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := Default()
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewLogger builds a slog.Logger from the log section.
func NewLogger(lc LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lc.Level, AddSource: lc.AddSource}
	var handler slog.Handler
	if lc.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
