package engine

import (
	"fmt"
	"math/rand"
)

// Season is the coarse demand cycle derived from the simulated day.
// Seasons are 90 days long on a 360-day year.
type Season string

const (
	SeasonSpring Season = "SPRING"
	SeasonSummer Season = "SUMMER"
	SeasonFall   Season = "FALL"
	SeasonWinter Season = "WINTER"
)

// SeasonForDay maps a simulated day to its season.
func SeasonForDay(day int) Season {
	switch ((day - 1) % 360) / 90 {
	case 0:
		return SeasonSpring
	case 1:
		return SeasonSummer
	case 2:
		return SeasonFall
	default:
		return SeasonWinter
	}
}

// demandBP is the season's base demand multiplier in basis points
// (10000 = neutral).
func (s Season) demandBP() int {
	switch s {
	case SeasonSummer:
		return 11000
	case SeasonFall:
		return 9000
	case SeasonWinter:
		return 14000
	default:
		return 10000
	}
}

// MarketEvent is a timed condition shifting wholesale prices and customer
// demand. RetailerID is empty when the event affects every retailer.
// Multipliers are basis points; 10000 is neutral.
type MarketEvent struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	RetailerID    string `json:"retailer_id"`
	PriceBP       int    `json:"price_bp"`
	DemandBP      int    `json:"demand_bp"`
	RemainingDays int    `json:"remaining_days"`
}

func (e MarketEvent) affects(retailerID string) bool {
	return e.RetailerID == "" || e.RetailerID == retailerID
}

// eventTemplates mirrors the classic roster of market shocks. Drawn
// uniformly by the engine's seeded RNG.
var eventTemplates = []MarketEvent{
	{Name: "Tech Surge", Description: "New gadget releases drive tech gift card demand", RetailerID: "itunes", PriceBP: 9000, DemandBP: 15000, RemainingDays: 4},
	{Name: "Coffee Festival", Description: "Local coffee festival lifts Starbucks popularity", RetailerID: "starbucks", PriceBP: 11000, DemandBP: 18000, RemainingDays: 3},
	{Name: "Supply Chain Issues", Description: "Logistics problems hit every retailer", RetailerID: "", PriceBP: 13000, DemandBP: 7000, RemainingDays: 5},
	{Name: "Amazon Prime Day", Description: "Promotion spike in Amazon demand", RetailerID: "amazon", PriceBP: 8500, DemandBP: 20000, RemainingDays: 2},
	{Name: "Back to School", Description: "Students stock up at Target", RetailerID: "target", PriceBP: 10500, DemandBP: 14000, RemainingDays: 7},
	{Name: "Economic Downturn", Description: "Customers tighten budgets", RetailerID: "", PriceBP: 10000, DemandBP: 6000, RemainingDays: 6},
	{Name: "Walmart Expansion", Description: "New stores improve Walmart availability", RetailerID: "walmart", PriceBP: 9500, DemandBP: 13000, RemainingDays: 4},
	{Name: "Market Boom", Description: "Broad growth benefits all retailers", RetailerID: "", PriceBP: 9000, DemandBP: 12000, RemainingDays: 5},
}

// Conditions tracks the current season and active market events. It is read
// by Market pricing and by the order generator's arrival probability, and
// advanced once per daily pass.
type Conditions struct {
	season      Season
	active      []MarketEvent
	nextEventIn int
}

// NewConditions starts at the given day's season with no active events.
// The first event fires after 3-9 days, drawn from rng.
func NewConditions(day int, rng *rand.Rand) *Conditions {
	return &Conditions{
		season:      SeasonForDay(day),
		nextEventIn: 3 + rng.Intn(7),
	}
}

// Season returns the current season.
func (c *Conditions) Season() Season { return c.season }

// Active returns a copy of the active events.
func (c *Conditions) Active() []MarketEvent {
	out := make([]MarketEvent, len(c.active))
	copy(out, c.active)
	return out
}

// AdvanceDay ages active events, rolls the season, and possibly starts a new
// event from the seeded RNG. Returns activity messages describing what
// changed, in a stable order (endings before starts).
func (c *Conditions) AdvanceDay(day int, rng *rand.Rand) []string {
	var messages []string

	kept := c.active[:0]
	for _, ev := range c.active {
		ev.RemainingDays--
		if ev.RemainingDays <= 0 {
			messages = append(messages, fmt.Sprintf("Market event %q has ended", ev.Name))
			continue
		}
		kept = append(kept, ev)
	}
	c.active = kept

	if next := SeasonForDay(day); next != c.season {
		c.season = next
		messages = append(messages, fmt.Sprintf("The %s season begins", next))
	}

	if c.nextEventIn > 0 {
		c.nextEventIn--
	} else {
		ev := eventTemplates[rng.Intn(len(eventTemplates))]
		c.active = append(c.active, ev)
		c.nextEventIn = 5 + rng.Intn(10)
		messages = append(messages, fmt.Sprintf("New market event: %s - %s", ev.Name, ev.Description))
	}

	return messages
}

// PriceBP is the combined wholesale price multiplier for a retailer in basis
// points. Pure read; no hidden mutation.
func (c *Conditions) PriceBP(retailerID string) int {
	bp := 10000
	for _, ev := range c.active {
		if ev.affects(retailerID) {
			bp = bp * ev.PriceBP / 10000
		}
	}
	return bp
}

// DemandBP is the combined order-demand multiplier for a retailer in basis
// points, including the seasonal base.
func (c *Conditions) DemandBP(retailerID string) int {
	bp := c.season.demandBP()
	for _, ev := range c.active {
		if ev.affects(retailerID) {
			bp = bp * ev.DemandBP / 10000
		}
	}
	return bp
}

// GlobalDemandBP is the demand multiplier ignoring retailer-specific events.
// Used for the daily order-arrival probability before items are chosen.
func (c *Conditions) GlobalDemandBP() int {
	bp := c.season.demandBP()
	for _, ev := range c.active {
		if ev.RetailerID == "" {
			bp = bp * ev.DemandBP / 10000
		}
	}
	return bp
}
