package cli

import (
	"strings"
	"time"

	"github.com/gramidt/vibe-card-empire/internal/config"
	"github.com/gramidt/vibe-card-empire/internal/engine"
	"github.com/gramidt/vibe-card-empire/internal/game"
	"github.com/gramidt/vibe-card-empire/internal/preset"
)

// loadConfig reads the TOML config named by --config, or the defaults.
func loadConfig(opts *RootOptions) (config.Config, error) {
	if opts.ConfigPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "loading config", err)
	}
	return *cfg, nil
}

// resolvePreset loads a preset by built-in name, or from a YAML file when
// the name contains a path separator.
func resolvePreset(name string) (preset.Preset, error) {
	if strings.ContainsAny(name, "/\\") || strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		p, err := preset.LoadFile(name)
		if err != nil {
			return preset.Preset{}, WrapExitError(ExitFailure, "loading preset file", err)
		}
		return p, nil
	}
	p, ok := preset.Builtin(name)
	if !ok {
		return preset.Preset{}, NewExitError(ExitFailure, "unknown preset "+name+", expected one of "+strings.Join(preset.Names(), ", "))
	}
	return p, nil
}

// engineConfig assembles the engine configuration from a preset and the
// game section of the app config.
func engineConfig(p preset.Preset, gc config.GameConfig, seed int64) engine.Config {
	return engine.Config{
		Seed:               seed,
		StartingCash:       p.StartingCash,
		StartingReputation: p.StartingReputation,
		Start:              game.GameTime{Day: 1, MinuteOfDay: 540},
		RealPerSimMinute:   time.Duration(gc.RealMillisPerSimMinute) * time.Millisecond,
		ExpirationMinDays:  p.ExpirationMinDays,
		ExpirationMaxDays:  p.ExpirationMaxDays,
		Policy: engine.Policy{
			BaseArrivalBP:       p.BaseArrivalBP,
			ReputationArrivalBP: p.ReputationArrivalBP,
			MaxOrdersPerDay:     p.MaxOrdersPerDay,
			DeadlineMinDays:     p.DeadlineMinDays,
			DeadlineMaxDays:     p.DeadlineMaxDays,
			HighMarginBP:        p.HighMarginBP,
			MediumMarginBP:      p.MediumMarginBP,
		},
		InitialOrders: p.InitialOrders,
	}
}
