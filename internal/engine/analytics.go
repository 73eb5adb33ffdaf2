package engine

import "github.com/gramidt/vibe-card-empire/internal/game"

// revenueWindowDays bounds the rolling daily revenue series kept for trends.
const revenueWindowDays = 30

// Analytics accumulates business performance counters. Counters only grow;
// the daily revenue series is a bounded window.
//
// Thread-safety: none. Owned by the engine's tick path.
type Analytics struct {
	totalRevenue    game.Cents
	totalPurchases  game.Cents
	ordersCompleted int
	ordersExpired   int
	ordersDeclined  int
	cardsSold       int
	cardsExpired    int

	marginBPSum   int64
	marginSamples int64

	todayRevenue game.Cents
	dailyRevenue []game.Cents
	bestDay      int
	bestDayRev   game.Cents
	currentDay   int
}

// NewAnalytics starts tracking from the given day.
func NewAnalytics(day int) *Analytics {
	return &Analytics{currentDay: day, bestDay: day}
}

// RecordPurchase adds a wholesale purchase to the spend counters.
func (a *Analytics) RecordPurchase(cost game.Cents) {
	a.totalPurchases += cost
}

// RecordFulfillment books revenue against cost basis for a completed order.
func (a *Analytics) RecordFulfillment(revenue, costBasis game.Cents, cards int) {
	a.totalRevenue += revenue
	a.todayRevenue += revenue
	a.ordersCompleted++
	a.cardsSold += cards
	if costBasis > 0 {
		a.marginBPSum += int64((revenue - costBasis) * 10000 / costBasis)
		a.marginSamples++
	}
	if a.todayRevenue > a.bestDayRev {
		a.bestDayRev = a.todayRevenue
		a.bestDay = a.currentDay
	}
}

// RecordOrderExpired counts an order lost to its deadline.
func (a *Analytics) RecordOrderExpired() { a.ordersExpired++ }

// RecordOrderDeclined counts an order turned away.
func (a *Analytics) RecordOrderDeclined() { a.ordersDeclined++ }

// RecordCardsExpired counts cards written off to expiration.
func (a *Analytics) RecordCardsExpired(cards int) { a.cardsExpired += cards }

// StartNewDay closes the current day's revenue into the rolling window.
func (a *Analytics) StartNewDay(day int) {
	a.dailyRevenue = append(a.dailyRevenue, a.todayRevenue)
	if len(a.dailyRevenue) > revenueWindowDays {
		a.dailyRevenue = a.dailyRevenue[1:]
	}
	a.todayRevenue = 0
	a.currentDay = day
}

// Report is the immutable analytics view embedded in snapshots.
type Report struct {
	TotalRevenue    game.Cents   `json:"total_revenue"`
	TotalPurchases  game.Cents   `json:"total_purchases"`
	NetProfit       game.Cents   `json:"net_profit"`
	OrdersCompleted int          `json:"orders_completed"`
	OrdersExpired   int          `json:"orders_expired"`
	OrdersDeclined  int          `json:"orders_declined"`
	CardsSold       int          `json:"cards_sold"`
	CardsExpired    int          `json:"cards_expired"`
	AvgMarginBP     int          `json:"avg_margin_bp"`
	BestDay         int          `json:"best_day"`
	BestDayRevenue  game.Cents   `json:"best_day_revenue"`
	DailyRevenue    []game.Cents `json:"daily_revenue"`
}

// Report builds the current analytics view.
func (a *Analytics) Report() Report {
	daily := make([]game.Cents, len(a.dailyRevenue))
	copy(daily, a.dailyRevenue)
	avgMargin := 0
	if a.marginSamples > 0 {
		avgMargin = int(a.marginBPSum / a.marginSamples)
	}
	return Report{
		TotalRevenue:    a.totalRevenue,
		TotalPurchases:  a.totalPurchases,
		NetProfit:       a.totalRevenue - a.totalPurchases,
		OrdersCompleted: a.ordersCompleted,
		OrdersExpired:   a.ordersExpired,
		OrdersDeclined:  a.ordersDeclined,
		CardsSold:       a.cardsSold,
		CardsExpired:    a.cardsExpired,
		AvgMarginBP:     avgMargin,
		BestDay:         a.bestDay,
		BestDayRevenue:  a.bestDayRev,
		DailyRevenue:    daily,
	}
}
