package engine

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

// quoteCacheSize bounds the memoized price quotes. Quotes are pure functions
// of (retailer, denomination, quantity, price multiplier), so caching never
// affects determinism.
const quoteCacheSize = 256

// Bulk discount tiers, in basis points off the quoted subtotal.
const (
	bulkTier1Qty = 5
	bulkTier1BP  = 300
	bulkTier2Qty = 10
	bulkTier2BP  = 600
	bulkTier3Qty = 25
	bulkTier3BP  = 1000
)

// minUnitCostBP floors the effective per-card cost at 70% of face value,
// so stacked discounts and favorable events never produce free stock.
const minUnitCostBP = 7000

// defaultRetailers is the wholesale catalog: per-retailer denominations with
// their base unit costs.
var defaultRetailers = []game.Retailer{
	{ID: "amazon", Name: "Amazon", Catalog: map[int]game.Cents{25: 2000}},
	{ID: "starbucks", Name: "Starbucks", Catalog: map[int]game.Cents{10: 800}},
	{ID: "target", Name: "Target", Catalog: map[int]game.Cents{50: 4200}},
	{ID: "itunes", Name: "iTunes", Catalog: map[int]game.Cents{15: 1200}},
	{ID: "walmart", Name: "Walmart", Catalog: map[int]game.Cents{20: 1700}},
}

// Quote is a priced purchase option.
type Quote struct {
	RetailerID   string     `json:"retailer_id"`
	Denomination int        `json:"denomination"`
	Quantity     int        `json:"quantity"`
	UnitCost     game.Cents `json:"unit_cost"`
	TotalCost    game.Cents `json:"total_cost"`
}

type quoteKey struct {
	retailerID   string
	denomination int
	quantity     int
	priceBP      int
}

// Market is the wholesale supplier catalog. It prices bulk purchases with
// quantity discounts and market-event multipliers, and supports availability
// toggles and fuzzy retailer lookup.
//
// Thread-safety: none. Owned by the engine's tick path.
type Market struct {
	retailers   map[string]game.Retailer
	ids         []string // sorted, for deterministic iteration
	unavailable map[string]bool
	names       []string // parallel to ids, for fuzzy matching
	quotes      *lru.Cache
}

// NewMarket builds a market from the default retailer catalog.
func NewMarket() *Market {
	return NewMarketWith(defaultRetailers)
}

// NewMarketWith builds a market from an explicit retailer set.
func NewMarketWith(retailers []game.Retailer) *Market {
	m := &Market{
		retailers:   make(map[string]game.Retailer, len(retailers)),
		unavailable: make(map[string]bool),
	}
	for _, r := range retailers {
		m.retailers[r.ID] = r
		m.ids = append(m.ids, r.ID)
	}
	sort.Strings(m.ids)
	for _, id := range m.ids {
		m.names = append(m.names, m.retailers[id].Name)
	}
	// NewWithEvict only errors on non-positive size.
	m.quotes, _ = lru.New(quoteCacheSize)
	return m
}

// Retailers returns the catalog in ascending retailer-id order.
func (m *Market) Retailers() []game.Retailer {
	out := make([]game.Retailer, 0, len(m.ids))
	for _, id := range m.ids {
		out = append(out, m.retailers[id])
	}
	return out
}

// Retailer looks up a retailer by id.
func (m *Market) Retailer(id string) (game.Retailer, bool) {
	r, ok := m.retailers[id]
	return r, ok
}

// IsAvailable reports whether the retailer currently accepts purchases.
func (m *Market) IsAvailable(retailerID string) bool {
	_, known := m.retailers[retailerID]
	return known && !m.unavailable[retailerID]
}

// SetAvailable toggles a retailer's purchase availability.
func (m *Market) SetAvailable(retailerID string, available bool) {
	if _, known := m.retailers[retailerID]; !known {
		return
	}
	if available {
		delete(m.unavailable, retailerID)
	} else {
		m.unavailable[retailerID] = true
	}
}

// Price quotes a bulk purchase under the given conditions. Bulk tiers lower
// the subtotal and event multipliers scale it, with the effective unit cost
// floored at minUnitCostBP of face value.
func (m *Market) Price(retailerID string, denomination, quantity int, cond *Conditions) (Quote, error) {
	if quantity < 1 {
		return Quote{}, NewInvalidCommandError(fmt.Sprintf("quantity must be at least 1, got %d", quantity))
	}
	r, ok := m.retailers[retailerID]
	if !ok {
		return Quote{}, NewInvalidCommandError(fmt.Sprintf("unknown retailer %q", retailerID))
	}
	base, ok := r.Catalog[denomination]
	if !ok {
		return Quote{}, NewInvalidCommandError(fmt.Sprintf("%s does not sell $%d cards", retailerID, denomination))
	}
	if !m.IsAvailable(retailerID) {
		return Quote{}, NewInsufficientStockError(retailerID, denomination)
	}

	priceBP := 10000
	if cond != nil {
		priceBP = cond.PriceBP(retailerID)
	}

	key := quoteKey{retailerID: retailerID, denomination: denomination, quantity: quantity, priceBP: priceBP}
	if cached, ok := m.quotes.Get(key); ok {
		return cached.(Quote), nil
	}

	discountBP := 0
	switch {
	case quantity >= bulkTier3Qty:
		discountBP = bulkTier3BP
	case quantity >= bulkTier2Qty:
		discountBP = bulkTier2BP
	case quantity >= bulkTier1Qty:
		discountBP = bulkTier1BP
	}

	unit := base * game.Cents(priceBP) / 10000
	unit = unit * game.Cents(10000-discountBP) / 10000
	if floor := game.Cents(denomination) * 100 * minUnitCostBP / 10000; unit < floor {
		unit = floor
	}

	q := Quote{
		RetailerID:   retailerID,
		Denomination: denomination,
		Quantity:     quantity,
		UnitCost:     unit,
		TotalCost:    unit * game.Cents(quantity),
	}
	m.quotes.Add(key, q)
	return q, nil
}

// Match finds retailers whose names fuzzily match the query, best match
// first. An empty query matches nothing.
func (m *Market) Match(query string) []game.Retailer {
	matches := fuzzy.Find(query, m.names)
	out := make([]game.Retailer, 0, len(matches))
	for _, match := range matches {
		out = append(out, m.retailers[m.ids[match.Index]])
	}
	return out
}

// Pairs returns every available (retailer, denomination) pair in ascending
// retailer-id then denomination order. Used by the order generator.
func (m *Market) Pairs() []game.OrderLine {
	var out []game.OrderLine
	for _, id := range m.ids {
		if m.unavailable[id] {
			continue
		}
		r := m.retailers[id]
		denoms := make([]int, 0, len(r.Catalog))
		for d := range r.Catalog {
			denoms = append(denoms, d)
		}
		sort.Ints(denoms)
		for _, d := range denoms {
			out = append(out, game.OrderLine{RetailerID: id, Denomination: d})
		}
	}
	return out
}
