package engine

import (
	"math/rand"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

// Policy tunes customer order generation. All probabilities and thresholds
// are basis points.
type Policy struct {
	// BaseArrivalBP is the per-attempt probability of an order arriving,
	// before reputation and demand scaling.
	BaseArrivalBP int

	// ReputationArrivalBP is the additional arrival probability granted at
	// maximum reputation, scaled linearly below it.
	ReputationArrivalBP int

	// MaxOrdersPerDay caps daily arrivals; each slot is an independent draw.
	MaxOrdersPerDay int

	// DeadlineMinDays and DeadlineMaxDays bound the uniformly drawn
	// fulfillment window.
	DeadlineMinDays int
	DeadlineMaxDays int

	// HighMarginBP and MediumMarginBP split orders into priorities by the
	// profit margin the offered price represents over current market cost.
	HighMarginBP   int
	MediumMarginBP int
}

// Offered prices range from 105% to 130% of face value. Customers with a
// reputable seller skew toward the top of the range.
const (
	offerFloorBP = 10500
	offerSpanBP  = 2500
)

var customerNames = []string{
	"Alice Johnson", "Bob Smith", "Carol White", "David Brown", "Emma Davis",
	"Frank Miller", "Grace Wilson", "Henry Moore", "Ivy Taylor", "Jack Anderson",
	"Karen Thomas", "Leo Jackson", "Mia Harris", "Noah Martin", "Olivia Garcia",
}

// Generator creates customer orders from the seeded RNG. Order ids are
// monotonically increasing within a session.
//
// Thread-safety: none. Owned by the engine's tick path.
type Generator struct {
	policy Policy
	nextID int64
}

// NewGenerator creates a generator with ids starting at 1000.
func NewGenerator(policy Policy) *Generator {
	if policy.DeadlineMaxDays < policy.DeadlineMinDays {
		policy.DeadlineMaxDays = policy.DeadlineMinDays
	}
	return &Generator{policy: policy, nextID: 1000}
}

// GenerateForDay draws the day's arrivals. Each of the MaxOrdersPerDay slots
// is an independent Bernoulli trial whose success probability grows with
// reputation and current market demand.
func (g *Generator) GenerateForDay(day, repMillistars int, market *Market, cond *Conditions, rng *rand.Rand) []game.CustomerOrder {
	repN := ReputationNormBP(repMillistars)
	arrivalBP := g.policy.BaseArrivalBP + g.policy.ReputationArrivalBP*repN/10000
	if cond != nil {
		arrivalBP = arrivalBP * cond.GlobalDemandBP() / 10000
	}
	if arrivalBP > 10000 {
		arrivalBP = 10000
	}

	var orders []game.CustomerOrder
	for i := 0; i < g.policy.MaxOrdersPerDay; i++ {
		if rng.Intn(10000) >= arrivalBP {
			continue
		}
		if order, ok := g.generateOne(day, repN, market, cond, rng); ok {
			orders = append(orders, order)
		}
	}
	return orders
}

// GenerateOne draws a single order unconditionally, used to seed the opening
// order book.
func (g *Generator) GenerateOne(day, repMillistars int, market *Market, cond *Conditions, rng *rand.Rand) (game.CustomerOrder, bool) {
	return g.generateOne(day, ReputationNormBP(repMillistars), market, cond, rng)
}

func (g *Generator) generateOne(day, repN int, market *Market, cond *Conditions, rng *rand.Rand) (game.CustomerOrder, bool) {
	pairs := market.Pairs()
	if len(pairs) == 0 {
		return game.CustomerOrder{}, false
	}

	lineCount := 1 + rng.Intn(3)
	if lineCount > len(pairs) {
		lineCount = len(pairs)
	}

	// Draw distinct pairs by index without disturbing the shared ordering.
	chosen := make(map[int]bool, lineCount)
	var items []game.OrderLine
	for len(items) < lineCount {
		idx := rng.Intn(len(pairs))
		if chosen[idx] {
			continue
		}
		chosen[idx] = true
		line := pairs[idx]
		line.Quantity = 1 + rng.Intn(5)
		items = append(items, line)
	}

	var face game.Cents
	var marketCost game.Cents
	for _, line := range items {
		face += line.FaceValue()
		if q, err := market.Price(line.RetailerID, line.Denomination, line.Quantity, cond); err == nil {
			marketCost += q.TotalCost
		} else {
			marketCost += line.FaceValue()
		}
	}

	// High reputation narrows the draw toward the top of the offer range.
	u := rng.Intn(offerSpanBP + 1)
	offerBP := offerFloorBP + (u*(10000-repN)+offerSpanBP*repN)/10000
	offered := face * game.Cents(offerBP) / 10000

	priority := game.PriorityLow
	if marketCost > 0 {
		marginBP := int((offered - marketCost) * 10000 / marketCost)
		switch {
		case marginBP >= g.policy.HighMarginBP:
			priority = game.PriorityHigh
		case marginBP >= g.policy.MediumMarginBP:
			priority = game.PriorityMedium
		}
	}

	deadline := day + g.policy.DeadlineMinDays + rng.Intn(g.policy.DeadlineMaxDays-g.policy.DeadlineMinDays+1)

	id := g.nextID
	g.nextID++
	return game.CustomerOrder{
		ID:           id,
		Customer:     customerNames[rng.Intn(len(customerNames))],
		Items:        items,
		OfferedPrice: offered,
		Priority:     priority,
		CreatedDay:   day,
		DeadlineDay:  deadline,
		State:        game.OrderPending,
	}, true
}
