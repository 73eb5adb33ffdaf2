package engine

import (
	"sort"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

// lineKey aggregates order lines that draw from the same inventory pool.
type lineKey struct {
	retailerID   string
	denomination int
}

// OrderBook holds the active (pending) customer orders. Terminal orders
// leave the book; their outcome is recorded in analytics and activity.
//
// Thread-safety: none. Owned by the engine's tick path.
type OrderBook struct {
	orders map[int64]*game.CustomerOrder
	ids    []int64 // insertion order
}

// NewOrderBook creates an empty book.
func NewOrderBook() *OrderBook {
	return &OrderBook{orders: make(map[int64]*game.CustomerOrder)}
}

// Insert adds a pending order to the book.
func (b *OrderBook) Insert(order game.CustomerOrder) {
	order.State = game.OrderPending
	b.orders[order.ID] = &order
	b.ids = append(b.ids, order.ID)
}

// Len reports the number of active orders.
func (b *OrderBook) Len() int { return len(b.orders) }

// Get looks up an active order by id.
func (b *OrderBook) Get(id int64) (game.CustomerOrder, bool) {
	o, ok := b.orders[id]
	if !ok {
		return game.CustomerOrder{}, false
	}
	return *o, true
}

// ExpireOverdue removes every order whose deadline has passed (deadline day
// strictly before the current day), returning them in insertion order with
// state set to expired. An order is fulfillable on its deadline day itself.
func (b *OrderBook) ExpireOverdue(currentDay int) []game.CustomerOrder {
	var expired []game.CustomerOrder
	kept := b.ids[:0]
	for _, id := range b.ids {
		o := b.orders[id]
		if o.DeadlineDay < currentDay {
			o.State = game.OrderExpired
			expired = append(expired, *o)
			delete(b.orders, id)
			continue
		}
		kept = append(kept, id)
	}
	b.ids = kept
	return expired
}

// AcceptAndFulfill consumes the order's items from inventory and removes the
// order from the book. Quantities are aggregated per retailer/denomination
// pair before any stock check, so an order listing the same pair twice is
// judged against the combined need. All-or-nothing: on any failure the
// inventory and book are unmodified.
//
// Returns the fulfilled order and the consumed cards' cost basis.
func (b *OrderBook) AcceptAndFulfill(id int64, inv *Inventory) (game.CustomerOrder, game.Cents, error) {
	o, ok := b.orders[id]
	if !ok {
		return game.CustomerOrder{}, 0, NewUnknownOrderError(id)
	}

	need := make(map[lineKey]int)
	var keys []lineKey
	for _, line := range o.Items {
		k := lineKey{retailerID: line.RetailerID, denomination: line.Denomination}
		if _, seen := need[k]; !seen {
			keys = append(keys, k)
		}
		need[k] += line.Quantity
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].retailerID != keys[j].retailerID {
			return keys[i].retailerID < keys[j].retailerID
		}
		return keys[i].denomination < keys[j].denomination
	})

	for _, k := range keys {
		if inv.Available(k.retailerID, k.denomination) < need[k] {
			return game.CustomerOrder{}, 0, NewUnfulfillableOrderError(id)
		}
	}

	var costBasis game.Cents
	for _, k := range keys {
		cost, err := inv.Consume(k.retailerID, k.denomination, need[k])
		if err != nil {
			// Unreachable after the availability pass; surface it anyway.
			return game.CustomerOrder{}, 0, err
		}
		costBasis += cost
	}

	o.State = game.OrderFulfilled
	fulfilled := *o
	b.remove(id)
	return fulfilled, costBasis, nil
}

// Decline removes an order from the book without touching inventory.
func (b *OrderBook) Decline(id int64) (game.CustomerOrder, error) {
	o, ok := b.orders[id]
	if !ok {
		return game.CustomerOrder{}, NewUnknownOrderError(id)
	}
	o.State = game.OrderDeclined
	declined := *o
	b.remove(id)
	return declined, nil
}

func (b *OrderBook) remove(id int64) {
	delete(b.orders, id)
	for i, v := range b.ids {
		if v == id {
			b.ids = append(b.ids[:i], b.ids[i+1:]...)
			return
		}
	}
}

// Active returns the pending orders sorted for display: priority descending,
// then nearest deadline, then ascending id.
func (b *OrderBook) Active() []game.CustomerOrder {
	out := make([]game.CustomerOrder, 0, len(b.ids))
	for _, id := range b.ids {
		out = append(out, *b.orders[id])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		}
		if out[i].DeadlineDay != out[j].DeadlineDay {
			return out[i].DeadlineDay < out[j].DeadlineDay
		}
		return out[i].ID < out[j].ID
	})
	return out
}
