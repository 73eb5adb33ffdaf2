package engine

import "github.com/gramidt/vibe-card-empire/internal/game"

// InventoryGroup summarizes stock for one retailer/denomination pair.
type InventoryGroup struct {
	RetailerID    string `json:"retailer_id"`
	Denomination  int    `json:"denomination"`
	Quantity      int    `json:"quantity"`
	SoonestExpiry int    `json:"soonest_expiry"`
}

// Snapshot is an immutable view of committed simulation state. A snapshot is
// built once per tick and never mutated afterward; readers on any goroutine
// may hold one indefinitely.
type Snapshot struct {
	Version  int64                 `json:"version"`
	Time     game.GameTime         `json:"time"`
	Paused   bool                  `json:"paused"`
	Player   game.Player           `json:"player"`
	Lots     []game.GiftCardLot    `json:"lots"`
	Groups   []InventoryGroup      `json:"groups"`
	Orders   []game.CustomerOrder  `json:"orders"`
	Activity []game.ActivityRecord `json:"activity"`
	Report   Report                `json:"report"`
	Season   Season                `json:"season"`
	Events   []MarketEvent         `json:"events"`
}

// toCanonicalMap converts the snapshot to a map[string]any because
// game.MarshalCanonical handles only primitives, slices, and maps.
func (s *Snapshot) toCanonicalMap() map[string]any {
	lots := make([]any, len(s.Lots))
	for i, lot := range s.Lots {
		lots[i] = map[string]any{
			"retailer_id":    lot.RetailerID,
			"denomination":   lot.Denomination,
			"unit_cost":      lot.UnitCost,
			"quantity":       lot.Quantity,
			"purchase_day":   lot.PurchaseDay,
			"expiration_day": lot.ExpirationDay,
		}
	}

	groups := make([]any, len(s.Groups))
	for i, g := range s.Groups {
		groups[i] = map[string]any{
			"retailer_id":    g.RetailerID,
			"denomination":   g.Denomination,
			"quantity":       g.Quantity,
			"soonest_expiry": g.SoonestExpiry,
		}
	}

	orders := make([]any, len(s.Orders))
	for i, o := range s.Orders {
		items := make([]any, len(o.Items))
		for j, line := range o.Items {
			items[j] = map[string]any{
				"retailer_id":  line.RetailerID,
				"denomination": line.Denomination,
				"quantity":     line.Quantity,
			}
		}
		orders[i] = map[string]any{
			"id":            o.ID,
			"customer":      o.Customer,
			"items":         items,
			"offered_price": o.OfferedPrice,
			"priority":      o.Priority,
			"created_day":   o.CreatedDay,
			"deadline_day":  o.DeadlineDay,
			"state":         o.State,
		}
	}

	activity := make([]any, len(s.Activity))
	for i, rec := range s.Activity {
		activity[i] = map[string]any{
			"day":     rec.Day,
			"minute":  rec.Minute,
			"message": rec.Message,
		}
	}

	daily := make([]any, len(s.Report.DailyRevenue))
	for i, v := range s.Report.DailyRevenue {
		daily[i] = v
	}
	report := map[string]any{
		"total_revenue":    s.Report.TotalRevenue,
		"total_purchases":  s.Report.TotalPurchases,
		"net_profit":       s.Report.NetProfit,
		"orders_completed": s.Report.OrdersCompleted,
		"orders_expired":   s.Report.OrdersExpired,
		"orders_declined":  s.Report.OrdersDeclined,
		"cards_sold":       s.Report.CardsSold,
		"cards_expired":    s.Report.CardsExpired,
		"avg_margin_bp":    s.Report.AvgMarginBP,
		"best_day":         s.Report.BestDay,
		"best_day_revenue": s.Report.BestDayRevenue,
		"daily_revenue":    daily,
	}

	events := make([]any, len(s.Events))
	for i, ev := range s.Events {
		events[i] = map[string]any{
			"name":           ev.Name,
			"description":    ev.Description,
			"retailer_id":    ev.RetailerID,
			"price_bp":       ev.PriceBP,
			"demand_bp":      ev.DemandBP,
			"remaining_days": ev.RemainingDays,
		}
	}

	return map[string]any{
		"version": s.Version,
		"time": map[string]any{
			"day":           s.Time.Day,
			"minute_of_day": s.Time.MinuteOfDay,
		},
		"paused": s.Paused,
		"player": map[string]any{
			"cash":       s.Player.Cash,
			"reputation": s.Player.Reputation,
		},
		"lots":     lots,
		"groups":   groups,
		"orders":   orders,
		"activity": activity,
		"report":   report,
		"season":   string(s.Season),
		"events":   events,
	}
}

// CanonicalJSON serializes the snapshot deterministically: identical state
// yields byte-identical output.
func (s *Snapshot) CanonicalJSON() ([]byte, error) {
	return game.MarshalCanonical(s.toCanonicalMap())
}

// Hash returns the hex SHA-256 fingerprint of the canonical encoding, used
// for replay comparison.
func (s *Snapshot) Hash() (string, error) {
	return game.CanonicalHash(s.toCanonicalMap())
}
