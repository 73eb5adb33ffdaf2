package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

func lot(retailer string, denom int, cost game.Cents, qty, purchase, expiry int) game.GiftCardLot {
	return game.GiftCardLot{
		RetailerID:    retailer,
		Denomination:  denom,
		UnitCost:      cost,
		Quantity:      qty,
		PurchaseDay:   purchase,
		ExpirationDay: expiry,
	}
}

func TestInventory_AddLotValidation(t *testing.T) {
	inv := NewInventory()

	err := inv.AddLot(lot("amazon", 25, 2000, 0, 1, 31))
	assert.True(t, IsCode(err, ErrCodeInvalidCommand), "zero quantity")

	err = inv.AddLot(lot("amazon", 25, 2000, 1, 5, 5))
	assert.True(t, IsCode(err, ErrCodeInvalidCommand), "expiration not after purchase")

	require.NoError(t, inv.AddLot(lot("amazon", 25, 2000, 1, 1, 31)))
	assert.Equal(t, 1, inv.TotalCards())
}

func TestInventory_OrderedByExpiration(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.AddLot(lot("amazon", 25, 2000, 1, 1, 60)))
	require.NoError(t, inv.AddLot(lot("target", 50, 4200, 1, 1, 30)))
	require.NoError(t, inv.AddLot(lot("itunes", 15, 1200, 1, 1, 45)))

	lots := inv.Lots()
	require.Len(t, lots, 3)
	assert.Equal(t, []int{30, 45, 60}, []int{lots[0].ExpirationDay, lots[1].ExpirationDay, lots[2].ExpirationDay})
}

func TestInventory_NeverMergesLots(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.AddLot(lot("amazon", 25, 2000, 1, 1, 31)))
	require.NoError(t, inv.AddLot(lot("amazon", 25, 1800, 2, 2, 31)))

	lots := inv.Lots()
	require.Len(t, lots, 2, "same pair and expiration still distinct lots")
	assert.Equal(t, game.Cents(2000), lots[0].UnitCost, "insertion order kept among equal expirations")
	assert.Equal(t, game.Cents(1800), lots[1].UnitCost)
}

func TestInventory_AgeOneDay(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.AddLot(lot("amazon", 25, 2000, 1, 1, 30)))
	require.NoError(t, inv.AddLot(lot("target", 50, 4200, 3, 1, 30)))
	require.NoError(t, inv.AddLot(lot("itunes", 15, 1200, 2, 1, 45)))

	assert.Empty(t, inv.AgeOneDay(29), "nothing expires before its day")

	removed := inv.AgeOneDay(30)
	require.Len(t, removed, 2, "both day-30 lots removed together")
	assert.Equal(t, "amazon", removed[0].RetailerID)
	assert.Equal(t, "target", removed[1].RetailerID)
	assert.Equal(t, 2, inv.TotalCards())

	assert.Empty(t, inv.AgeOneDay(30), "a lot expires exactly once")
}

func TestInventory_ConsumeOldestFirst(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.AddLot(lot("starbucks", 10, 800, 3, 1, 60)))
	require.NoError(t, inv.AddLot(lot("starbucks", 10, 750, 2, 2, 30)))

	// The day-30 lot is consumed first despite being added second.
	cost, err := inv.Consume("starbucks", 10, 2)
	require.NoError(t, err)
	assert.Equal(t, game.Cents(1500), cost)
	assert.Equal(t, 3, inv.Available("starbucks", 10))

	lots := inv.Lots()
	require.Len(t, lots, 1)
	assert.Equal(t, 60, lots[0].ExpirationDay)
}

func TestInventory_ConsumeSplitsLot(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.AddLot(lot("starbucks", 10, 800, 5, 1, 60)))

	cost, err := inv.Consume("starbucks", 10, 2)
	require.NoError(t, err)
	assert.Equal(t, game.Cents(1600), cost)

	lots := inv.Lots()
	require.Len(t, lots, 1)
	assert.Equal(t, 3, lots[0].Quantity, "remaining cards keep their lot")
	assert.Equal(t, game.Cents(800), lots[0].UnitCost)
}

func TestInventory_ConsumeSpansLots(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.AddLot(lot("starbucks", 10, 750, 2, 1, 30)))
	require.NoError(t, inv.AddLot(lot("starbucks", 10, 800, 4, 1, 60)))

	cost, err := inv.Consume("starbucks", 10, 5)
	require.NoError(t, err)
	assert.Equal(t, game.Cents(2*750+3*800), cost)
	assert.Equal(t, 1, inv.Available("starbucks", 10))
}

func TestInventory_ConsumeAllOrNothing(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.AddLot(lot("starbucks", 10, 800, 2, 1, 60)))

	_, err := inv.Consume("starbucks", 10, 3)
	assert.True(t, IsCode(err, ErrCodeInsufficientStock))
	assert.Equal(t, 2, inv.Available("starbucks", 10), "failed consume leaves inventory intact")

	_, err = inv.Consume("amazon", 25, 1)
	assert.True(t, IsCode(err, ErrCodeInsufficientStock), "no stock at all")

	_, err = inv.Consume("starbucks", 10, 0)
	assert.True(t, IsCode(err, ErrCodeInvalidCommand))
}

func TestInventory_TotalCostBasis(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.AddLot(lot("amazon", 25, 2000, 2, 1, 31)))
	require.NoError(t, inv.AddLot(lot("itunes", 15, 1200, 1, 1, 31)))
	assert.Equal(t, game.Cents(5200), inv.TotalCostBasis())
}
