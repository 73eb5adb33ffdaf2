package engine

import (
	"time"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

// DefaultRealPerSimMinute is the default time ratio: 10 simulated minutes
// per 3 real seconds, i.e. 300ms of wall clock per simulated minute.
const DefaultRealPerSimMinute = 300 * time.Millisecond

// Clock converts wall-clock elapsed time into simulated minutes and reports
// day-boundary crossings. It knows nothing about orders or inventory - only
// time progression.
//
// Clock never fails: Advance on a paused clock is a no-op, and pause/resume
// are idempotent.
//
// Thread-safety: none. The clock is owned by the engine and touched only
// from the single-writer tick path.
type Clock struct {
	day         int
	minuteOfDay int
	remainder   time.Duration // wall-clock carry below one simulated minute
	ratio       time.Duration // wall-clock duration of one simulated minute
	paused      bool
}

// NewClock creates a clock at the given starting instant.
// A non-positive ratio falls back to DefaultRealPerSimMinute.
func NewClock(start game.GameTime, realPerSimMinute time.Duration) *Clock {
	if realPerSimMinute <= 0 {
		realPerSimMinute = DefaultRealPerSimMinute
	}
	if start.Day < 1 {
		start.Day = 1
	}
	return &Clock{
		day:         start.Day,
		minuteOfDay: start.MinuteOfDay,
		ratio:       realPerSimMinute,
	}
}

// Advance converts elapsed wall-clock time into simulated minutes and
// returns the ordered day numbers entered (zero, one, or more when the
// elapsed time spans multiple simulated days). While paused it advances
// nothing and returns nil.
func (c *Clock) Advance(elapsed time.Duration) []int {
	if c.paused || elapsed <= 0 {
		return nil
	}

	total := c.remainder + elapsed
	minutes := int(total / c.ratio)
	c.remainder = total % c.ratio

	var crossings []int
	for i := 0; i < minutes; i++ {
		c.minuteOfDay++
		if c.minuteOfDay >= game.MinutesPerDay {
			c.minuteOfDay = 0
			c.day++
			crossings = append(crossings, c.day)
		}
	}
	return crossings
}

// Pause halts time advancement. Idempotent.
func (c *Clock) Pause() { c.paused = true }

// Resume restarts time advancement. Idempotent.
func (c *Clock) Resume() { c.paused = false }

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool { return c.paused }

// Now returns the current simulated instant.
func (c *Clock) Now() game.GameTime {
	return game.GameTime{Day: c.day, MinuteOfDay: c.minuteOfDay}
}
