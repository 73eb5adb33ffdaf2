// Package preset defines difficulty presets: the tunable economy parameters
// a game session starts from. Presets are either built in or loaded from
// YAML files validated against an embedded CUE schema.
package preset

import (
	"sort"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

// Preset is a named bundle of economy tuning. All money is cents and all
// rates and thresholds are basis points, so presets carry no floats.
type Preset struct {
	Name string `json:"name" yaml:"name"`

	StartingCash       game.Cents `json:"starting_cash" yaml:"starting_cash"`
	StartingReputation int        `json:"starting_reputation" yaml:"starting_reputation"`

	HighMarginBP   int `json:"high_margin_bp" yaml:"high_margin_bp"`
	MediumMarginBP int `json:"medium_margin_bp" yaml:"medium_margin_bp"`

	ExpirationMinDays int `json:"expiration_min_days" yaml:"expiration_min_days"`
	ExpirationMaxDays int `json:"expiration_max_days" yaml:"expiration_max_days"`

	DeadlineMinDays int `json:"deadline_min_days" yaml:"deadline_min_days"`
	DeadlineMaxDays int `json:"deadline_max_days" yaml:"deadline_max_days"`

	BaseArrivalBP       int `json:"base_arrival_bp" yaml:"base_arrival_bp"`
	ReputationArrivalBP int `json:"reputation_arrival_bp" yaml:"reputation_arrival_bp"`
	MaxOrdersPerDay     int `json:"max_orders_per_day" yaml:"max_orders_per_day"`
	InitialOrders       int `json:"initial_orders" yaml:"initial_orders"`
}

var builtin = map[string]Preset{
	"easy": {
		Name:                "easy",
		StartingCash:        1000000,
		StartingReputation:  3500,
		HighMarginBP:        1500,
		MediumMarginBP:      600,
		ExpirationMinDays:   45,
		ExpirationMaxDays:   120,
		DeadlineMinDays:     3,
		DeadlineMaxDays:     8,
		BaseArrivalBP:       7000,
		ReputationArrivalBP: 3000,
		MaxOrdersPerDay:     4,
		InitialOrders:       3,
	},
	"normal": {
		Name:                "normal",
		StartingCash:        500000,
		StartingReputation:  3000,
		HighMarginBP:        1800,
		MediumMarginBP:      800,
		ExpirationMinDays:   30,
		ExpirationMaxDays:   90,
		DeadlineMinDays:     2,
		DeadlineMaxDays:     6,
		BaseArrivalBP:       5500,
		ReputationArrivalBP: 3500,
		MaxOrdersPerDay:     3,
		InitialOrders:       2,
	},
	"hard": {
		Name:                "hard",
		StartingCash:        250000,
		StartingReputation:  2500,
		HighMarginBP:        2200,
		MediumMarginBP:      1000,
		ExpirationMinDays:   20,
		ExpirationMaxDays:   60,
		DeadlineMinDays:     2,
		DeadlineMaxDays:     5,
		BaseArrivalBP:       4000,
		ReputationArrivalBP: 4000,
		MaxOrdersPerDay:     3,
		InitialOrders:       1,
	},
}

// Builtin looks up a built-in preset by name.
func Builtin(name string) (Preset, bool) {
	p, ok := builtin[name]
	return p, ok
}

// Names returns the built-in preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
