// Package game defines the domain value types shared by the simulation
// engine, the save store, and the CLI: simulated time, retailers, gift-card
// lots, customer orders, and activity records.
//
// Types in this package are plain values. They carry no behavior that
// mutates engine state - all mutation happens inside the engine's
// single-writer tick path.
package game

import "fmt"

// MinutesPerDay is the length of a simulated day.
const MinutesPerDay = 1440

// GameTime is a simulated instant.
//
// INVARIANTS:
//   - Day >= 1
//   - 0 <= MinuteOfDay < MinutesPerDay
//   - GameTime is monotonically non-decreasing across a run
type GameTime struct {
	Day         int `json:"day"`
	MinuteOfDay int `json:"minute_of_day"`
}

// Before reports whether t is strictly earlier than other.
func (t GameTime) Before(other GameTime) bool {
	if t.Day != other.Day {
		return t.Day < other.Day
	}
	return t.MinuteOfDay < other.MinuteOfDay
}

// String renders the instant as "Day 3 09:40".
func (t GameTime) String() string {
	return fmt.Sprintf("Day %d %02d:%02d", t.Day, t.MinuteOfDay/60, t.MinuteOfDay%60)
}

// Retailer is immutable reference data owned by the Market: an identity plus
// the catalog of denominations it sells wholesale.
//
// Catalog maps face-value denomination (whole currency units, e.g. 25 for a
// $25 card) to the base wholesale unit cost in cents.
type Retailer struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Catalog map[int]Cents `json:"catalog"`
}

// GiftCardLot is a single purchase batch of identical gift cards sharing one
// purchase day and unit cost. Lots are owned exclusively by the Inventory.
//
// INVARIANTS:
//   - ExpirationDay > PurchaseDay
//   - Quantity >= 1 (a lot that reaches zero is removed, never retained)
type GiftCardLot struct {
	RetailerID    string `json:"retailer_id"`
	Denomination  int    `json:"denomination"`
	UnitCost      Cents  `json:"unit_cost"`
	Quantity      int    `json:"quantity"`
	PurchaseDay   int    `json:"purchase_day"`
	ExpirationDay int    `json:"expiration_day"`
}

// TotalCost is the purchase value of the whole lot.
func (l GiftCardLot) TotalCost() Cents {
	return l.UnitCost * Cents(l.Quantity)
}

// FaceValue is the combined face value of the lot in cents.
func (l GiftCardLot) FaceValue() Cents {
	return Cents(l.Denomination) * 100 * Cents(l.Quantity)
}

// Priority classifies how desirable a customer order is, derived from its
// implied profit margin at generation time.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Rank orders priorities for display sorting (higher sorts first).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// OrderState is the lifecycle state of a customer order.
//
// State machine: Pending -> {Fulfilled | Expired | Declined}.
// All three non-Pending states are terminal; there are no transitions out.
type OrderState string

const (
	OrderPending   OrderState = "PENDING"
	OrderFulfilled OrderState = "FULFILLED"
	OrderExpired   OrderState = "EXPIRED"
	OrderDeclined  OrderState = "DECLINED"
)

// Terminal reports whether the state permits no further transitions.
func (s OrderState) Terminal() bool {
	return s == OrderFulfilled || s == OrderExpired || s == OrderDeclined
}

// OrderLine is one requested item of a customer order: a quantity of a
// specific retailer/denomination pair, referenced by value.
type OrderLine struct {
	RetailerID   string `json:"retailer_id"`
	Denomination int    `json:"denomination"`
	Quantity     int    `json:"quantity"`
}

// FaceValue is the combined face value of the line in cents.
func (l OrderLine) FaceValue() Cents {
	return Cents(l.Denomination) * 100 * Cents(l.Quantity)
}

// CustomerOrder is a time-boxed request from a customer. It is owned by the
// OrderBook from creation until it reaches a terminal state.
type CustomerOrder struct {
	ID           int64       `json:"id"`
	Customer     string      `json:"customer"`
	Items        []OrderLine `json:"items"`
	OfferedPrice Cents       `json:"offered_price"`
	Priority     Priority    `json:"priority"`
	CreatedDay   int         `json:"created_day"`
	DeadlineDay  int         `json:"deadline_day"`
	State        OrderState  `json:"state"`
}

// FaceValue is the combined face value of all requested items in cents.
func (o CustomerOrder) FaceValue() Cents {
	var total Cents
	for _, line := range o.Items {
		total += line.FaceValue()
	}
	return total
}

// Player holds the singular player economy: cash in cents and reputation in
// millistars (0..5000, where 1000 millistars = one display star).
//
// INVARIANT: Cash >= 0 in every committed state. Purchase commands that
// would drive it negative are rejected before any mutation.
type Player struct {
	Cash       Cents `json:"cash"`
	Reputation int   `json:"reputation"`
}

// ActivityRecord is one immutable, human-readable log entry shown in the UI
// activity feed. Records live in a bounded ring; the oldest are evicted
// first.
type ActivityRecord struct {
	Day     int    `json:"day"`
	Minute  int    `json:"minute"`
	Message string `json:"message"`
}
