package engine

import (
	"fmt"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

// Reputation is stored in millistars: 0 to 5000 covering a 0.0 to 5.0 star
// display. Integer fixed point keeps reputation arithmetic deterministic.
const MaxMillistars = 5000

// ReputationGainOnFulfill computes the millistar reward for fulfilling an
// order with the given days of slack before its deadline. The curve has
// diminishing returns: barely making the deadline earns the base 40, and
// each extra day of earliness adds less than the last, capping below 200.
func ReputationGainOnFulfill(earlinessDays int) int {
	if earlinessDays < 0 {
		earlinessDays = 0
	}
	return 160*earlinessDays/(earlinessDays+2) + 40
}

// ReputationLossOnExpire computes the millistar penalty for letting an order
// expire. Higher priority orders cost more standing.
func ReputationLossOnExpire(p game.Priority) int {
	switch p {
	case game.PriorityHigh:
		return 250
	case game.PriorityMedium:
		return 150
	default:
		return 80
	}
}

// ClampMillistars bounds a reputation value to [0, MaxMillistars].
func ClampMillistars(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxMillistars {
		return MaxMillistars
	}
	return v
}

// ReputationNormBP maps millistars to a 0..10000 basis-point scale for use
// in pricing and arrival-rate formulas.
func ReputationNormBP(millistars int) int {
	return ClampMillistars(millistars) * 10000 / MaxMillistars
}

// FormatStars renders millistars as a one-decimal star display, e.g. "3.2".
func FormatStars(millistars int) string {
	v := ClampMillistars(millistars)
	return fmt.Sprintf("%d.%d", v/1000, (v%1000)/100)
}
