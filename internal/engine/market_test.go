package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

func neutralConditions(t *testing.T) *Conditions {
	t.Helper()
	return NewConditions(1, rand.New(rand.NewSource(1)))
}

func TestMarket_PriceBase(t *testing.T) {
	m := NewMarket()
	cond := neutralConditions(t)

	q, err := m.Price("starbucks", 10, 1, cond)
	require.NoError(t, err)
	assert.Equal(t, game.Cents(800), q.UnitCost)
	assert.Equal(t, game.Cents(800), q.TotalCost)
}

func TestMarket_BulkDiscountTiers(t *testing.T) {
	m := NewMarket()
	cond := neutralConditions(t)

	tests := []struct {
		name     string
		quantity int
		unit     game.Cents
	}{
		{"no discount below 5", 4, 800},
		{"3% off at 5", 5, 776},
		{"6% off at 10", 10, 752},
		{"10% off at 25", 25, 720},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := m.Price("starbucks", 10, tt.quantity, cond)
			require.NoError(t, err)
			assert.Equal(t, tt.unit, q.UnitCost)
			assert.Equal(t, tt.unit*game.Cents(tt.quantity), q.TotalCost)
		})
	}
}

func TestMarket_PriceFloor(t *testing.T) {
	// An extreme favorable event cannot push cost below 70% of face value.
	m := NewMarket()
	cond := &Conditions{season: SeasonSpring}
	cond.active = []MarketEvent{
		{Name: "Crash", RetailerID: "", PriceBP: 1000, DemandBP: 10000, RemainingDays: 3},
	}

	q, err := m.Price("amazon", 25, 1, cond)
	require.NoError(t, err)
	assert.Equal(t, game.Cents(1750), q.UnitCost, "floored at 70% of $25")
}

func TestMarket_PriceAppliesEventMultiplier(t *testing.T) {
	m := NewMarket()
	cond := &Conditions{season: SeasonSpring}
	cond.active = []MarketEvent{
		{Name: "Supply Chain Issues", RetailerID: "", PriceBP: 13000, DemandBP: 7000, RemainingDays: 5},
	}

	q, err := m.Price("walmart", 20, 1, cond)
	require.NoError(t, err)
	assert.Equal(t, game.Cents(2210), q.UnitCost, "1700 * 1.3")
}

func TestMarket_PriceErrors(t *testing.T) {
	m := NewMarket()
	cond := neutralConditions(t)

	_, err := m.Price("nosuch", 10, 1, cond)
	assert.True(t, IsCode(err, ErrCodeInvalidCommand))

	_, err = m.Price("amazon", 99, 1, cond)
	assert.True(t, IsCode(err, ErrCodeInvalidCommand), "unknown denomination")

	_, err = m.Price("amazon", 25, 0, cond)
	assert.True(t, IsCode(err, ErrCodeInvalidCommand), "non-positive quantity")

	m.SetAvailable("amazon", false)
	_, err = m.Price("amazon", 25, 1, cond)
	assert.True(t, IsCode(err, ErrCodeInsufficientStock))

	m.SetAvailable("amazon", true)
	_, err = m.Price("amazon", 25, 1, cond)
	assert.NoError(t, err)
}

func TestMarket_QuoteCacheConsistency(t *testing.T) {
	m := NewMarket()
	cond := neutralConditions(t)

	first, err := m.Price("target", 50, 10, cond)
	require.NoError(t, err)
	second, err := m.Price("target", 50, 10, cond)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarket_Retailers(t *testing.T) {
	m := NewMarket()
	retailers := m.Retailers()
	require.Len(t, retailers, 5)

	var ids []string
	for _, r := range retailers {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"amazon", "itunes", "starbucks", "target", "walmart"}, ids)
}

func TestMarket_Match(t *testing.T) {
	m := NewMarket()

	results := m.Match("star")
	require.NotEmpty(t, results)
	assert.Equal(t, "starbucks", results[0].ID)

	assert.Empty(t, m.Match(""), "empty query matches nothing")
	assert.Empty(t, m.Match("zzzzqqq"))
}

func TestMarket_PairsSkipsUnavailable(t *testing.T) {
	m := NewMarket()
	assert.Len(t, m.Pairs(), 5)

	m.SetAvailable("itunes", false)
	pairs := m.Pairs()
	assert.Len(t, pairs, 4)
	for _, p := range pairs {
		assert.NotEqual(t, "itunes", p.RetailerID)
	}
}
