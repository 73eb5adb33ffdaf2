package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "normal", cfg.Game.Preset)
	assert.Equal(t, 100, cfg.Game.TickMillis)
	assert.Equal(t, 300, cfg.Game.RealMillisPerSimMinute)
	assert.Equal(t, "vibecard.db", cfg.Save.Path)
	assert.Equal(t, 30, cfg.Save.AutosaveSeconds)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[log]
level = "DEBUG"
format = "json"
add_source = true

[game]
preset = "hard"
seed = 1234

[save]
path = "saves/test.db"
autosave_seconds = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Log.AddSource)
	assert.Equal(t, "hard", cfg.Game.Preset)
	assert.Equal(t, int64(1234), cfg.Game.Seed)
	assert.Equal(t, "saves/test.db", cfg.Save.Path)
	assert.Equal(t, 10, cfg.Save.AutosaveSeconds)

	// Unspecified fields keep their defaults.
	assert.Equal(t, 100, cfg.Game.TickMillis)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log\nlevel ="), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(LogConfig{Level: slog.LevelWarn, Format: "json"})
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(nil, slog.LevelInfo))
	assert.True(t, logger.Enabled(nil, slog.LevelError))

	text := NewLogger(LogConfig{Level: slog.LevelDebug})
	assert.True(t, text.Enabled(nil, slog.LevelDebug))
}
