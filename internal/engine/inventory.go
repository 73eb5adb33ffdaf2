package engine

import (
	"fmt"
	"sort"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

// Inventory holds the player's gift card lots ordered by ascending
// expiration day, ties broken by insertion order. Lots are never merged:
// cards bought on different days or at different costs keep separate
// cost bases.
//
// Thread-safety: none. Owned by the engine's tick path.
type Inventory struct {
	lots []game.GiftCardLot
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{}
}

// AddLot inserts a lot, keeping the expiration ordering. The lot must have a
// positive quantity and expire strictly after its purchase day.
func (inv *Inventory) AddLot(lot game.GiftCardLot) error {
	if lot.Quantity < 1 {
		return NewInvalidCommandError(fmt.Sprintf("lot quantity must be at least 1, got %d", lot.Quantity))
	}
	if lot.ExpirationDay <= lot.PurchaseDay {
		return NewInvalidCommandError(fmt.Sprintf("lot expires day %d, on or before purchase day %d", lot.ExpirationDay, lot.PurchaseDay))
	}
	// Insert after all lots with expiration <= lot's, preserving insertion
	// order among equal expirations.
	i := sort.Search(len(inv.lots), func(i int) bool {
		return inv.lots[i].ExpirationDay > lot.ExpirationDay
	})
	inv.lots = append(inv.lots, game.GiftCardLot{})
	copy(inv.lots[i+1:], inv.lots[i:])
	inv.lots[i] = lot
	return nil
}

// AgeOneDay removes and returns every lot whose expiration day has arrived.
// The returned lots preserve their stored order.
func (inv *Inventory) AgeOneDay(currentDay int) []game.GiftCardLot {
	// Lots are sorted by expiration, so expired lots form a prefix.
	n := sort.Search(len(inv.lots), func(i int) bool {
		return inv.lots[i].ExpirationDay > currentDay
	})
	if n == 0 {
		return nil
	}
	expired := make([]game.GiftCardLot, n)
	copy(expired, inv.lots[:n])
	inv.lots = append(inv.lots[:0], inv.lots[n:]...)
	return expired
}

// Available counts cards on hand for a retailer/denomination pair.
func (inv *Inventory) Available(retailerID string, denomination int) int {
	total := 0
	for _, lot := range inv.lots {
		if lot.RetailerID == retailerID && lot.Denomination == denomination {
			total += lot.Quantity
		}
	}
	return total
}

// Consume removes quantity cards of the given retailer/denomination,
// soonest-expiring lots first, splitting a lot when partially consumed.
// All-or-nothing: on insufficient stock the inventory is unmodified.
// Returns the total cost basis of the consumed cards.
func (inv *Inventory) Consume(retailerID string, denomination, quantity int) (game.Cents, error) {
	if quantity < 1 {
		return 0, NewInvalidCommandError(fmt.Sprintf("consume quantity must be at least 1, got %d", quantity))
	}
	if inv.Available(retailerID, denomination) < quantity {
		return 0, NewInsufficientStockError(retailerID, denomination)
	}

	var cost game.Cents
	remaining := quantity
	kept := inv.lots[:0]
	for _, lot := range inv.lots {
		if remaining == 0 || lot.RetailerID != retailerID || lot.Denomination != denomination {
			kept = append(kept, lot)
			continue
		}
		take := lot.Quantity
		if take > remaining {
			take = remaining
		}
		cost += lot.UnitCost * game.Cents(take)
		remaining -= take
		if take < lot.Quantity {
			lot.Quantity -= take
			kept = append(kept, lot)
		}
	}
	inv.lots = kept
	return cost, nil
}

// Lots returns a copy of the stored lots in expiration order.
func (inv *Inventory) Lots() []game.GiftCardLot {
	out := make([]game.GiftCardLot, len(inv.lots))
	copy(out, inv.lots)
	return out
}

// TotalCards counts every card on hand.
func (inv *Inventory) TotalCards() int {
	total := 0
	for _, lot := range inv.lots {
		total += lot.Quantity
	}
	return total
}

// TotalCostBasis sums the purchase cost of every card on hand.
func (inv *Inventory) TotalCostBasis() game.Cents {
	var total game.Cents
	for _, lot := range inv.lots {
		total += lot.TotalCost()
	}
	return total
}
