package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync/atomic"
	"time"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

// Config carries everything the engine needs at construction. Zero values
// fall back to sensible defaults; Seed has no default because replayability
// requires the caller to choose it deliberately.
type Config struct {
	// Seed initializes the engine's single random source.
	Seed int64

	// StartingCash and StartingReputation set the opening player state.
	StartingCash       game.Cents
	StartingReputation int

	// Start is the opening simulated instant.
	Start game.GameTime

	// RealPerSimMinute is the wall-clock duration of one simulated minute.
	RealPerSimMinute time.Duration

	// ExpirationMinDays and ExpirationMaxDays bound the uniformly drawn
	// shelf life of purchased cards.
	ExpirationMinDays int
	ExpirationMaxDays int

	// Policy tunes customer order generation.
	Policy Policy

	// InitialOrders seeds the opening order book.
	InitialOrders int

	// ActivityCapacity bounds the retained activity feed.
	ActivityCapacity int

	// Logger receives engine diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// Engine orchestrates the simulation. All state mutation happens inside
// Tick, called from exactly one goroutine; concurrent callers interact only
// through Enqueue and Snapshot.
type Engine struct {
	cfg    Config
	log    *slog.Logger
	rng    *rand.Rand
	clock  *Clock
	market *Market
	cond   *Conditions
	inv    *Inventory
	book   *OrderBook
	gen    *Generator
	stats  *Analytics
	feed   *activityLog
	player game.Player
	queue  *commandQueue

	version  int64
	snapshot atomic.Pointer[Snapshot]
}

// New constructs an engine, seeds the opening order book, and commits the
// initial snapshot.
func New(cfg Config) *Engine {
	if cfg.Start.Day < 1 {
		cfg.Start.Day = 1
	}
	if cfg.ExpirationMinDays < 1 {
		cfg.ExpirationMinDays = 1
	}
	if cfg.ExpirationMaxDays < cfg.ExpirationMinDays {
		cfg.ExpirationMaxDays = cfg.ExpirationMinDays
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	e := &Engine{
		cfg:    cfg,
		log:    log,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		clock:  NewClock(cfg.Start, cfg.RealPerSimMinute),
		market: NewMarket(),
		inv:    NewInventory(),
		book:   NewOrderBook(),
		gen:    NewGenerator(cfg.Policy),
		stats:  NewAnalytics(cfg.Start.Day),
		feed:   newActivityLog(cfg.ActivityCapacity),
		player: game.Player{Cash: cfg.StartingCash, Reputation: ClampMillistars(cfg.StartingReputation)},
		queue:  newCommandQueue(),
	}
	e.cond = NewConditions(cfg.Start.Day, e.rng)

	e.feed.Append(e.clock.Now(), "Welcome to your gift card trading business")
	for i := 0; i < cfg.InitialOrders; i++ {
		if order, ok := e.gen.GenerateOne(cfg.Start.Day, e.player.Reputation, e.market, e.cond, e.rng); ok {
			e.book.Insert(order)
			e.feed.Append(e.clock.Now(), fmt.Sprintf("New order #%d from %s for %s", order.ID, order.Customer, order.OfferedPrice))
		}
	}

	e.commit()
	return e
}

// Enqueue submits a command for application at the start of the next tick.
// Thread-safe. Returns false after Close.
func (e *Engine) Enqueue(c Command) bool {
	return e.queue.Enqueue(c)
}

// Submit enqueues a command with a reply channel and waits for its outcome.
// Thread-safe; intended for hosts that want synchronous command semantics.
func (e *Engine) Submit(ctx context.Context, c Command) error {
	reply := make(chan error, 1)
	c.Reply = reply
	if !e.Enqueue(c) {
		return fmt.Errorf("engine is shut down")
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-reply:
		return err
	}
}

// Snapshot returns the latest committed state. Thread-safe; the returned
// snapshot is immutable.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Close stops accepting commands and wakes any Run loop waiting for work.
func (e *Engine) Close() {
	e.queue.Close()
}

// Tick advances the simulation: queued commands are applied in submission
// order, then elapsed wall-clock time is converted to simulated minutes with
// one daily pass per day boundary crossed, and finally the new state is
// committed as an immutable snapshot.
//
// Single-writer: Tick must only ever be called from one goroutine.
func (e *Engine) Tick(elapsed time.Duration) {
	for {
		cmd, ok := e.queue.TryDequeue()
		if !ok {
			break
		}
		err := e.applyCommand(cmd)
		if err != nil {
			e.log.Debug("command failed", "type", cmd.Type, "error", err)
			e.feed.Append(e.clock.Now(), err.Error())
		}
		if cmd.Reply != nil {
			select {
			case cmd.Reply <- err:
			default:
			}
		}
	}

	for _, day := range e.clock.Advance(elapsed) {
		e.dailyPass(day)
	}

	e.commit()
}

// Run drives Tick on a fixed cadence until ctx is canceled. Commands wake
// the loop immediately so interactive actions are not delayed by the tick
// interval. Each ticker fire advances the clock by exactly cadence, keeping
// the elapsed-time sequence reproducible.
func (e *Engine) Run(ctx context.Context, cadence time.Duration) error {
	if cadence <= 0 {
		cadence = 100 * time.Millisecond
	}
	ticker := time.NewTicker(cadence)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.Tick(cadence)
		case <-e.queue.Wait():
			e.Tick(0)
		}
	}
}

func (e *Engine) applyCommand(c Command) error {
	switch c.Type {
	case CommandPurchase:
		if c.Purchase == nil {
			return NewInvalidCommandError("purchase command has no payload")
		}
		return e.applyPurchase(*c.Purchase)
	case CommandAcceptOrder:
		return e.applyAccept(c.OrderID)
	case CommandDeclineOrder:
		return e.applyDecline(c.OrderID)
	case CommandPause:
		e.clock.Pause()
		return nil
	case CommandResume:
		e.clock.Resume()
		return nil
	default:
		return NewInvalidCommandError(fmt.Sprintf("unknown command type %d", c.Type))
	}
}

func (e *Engine) applyPurchase(p PurchaseCommand) error {
	quote, err := e.market.Price(p.RetailerID, p.Denomination, p.Quantity, e.cond)
	if err != nil {
		return err
	}
	if quote.TotalCost > e.player.Cash {
		return NewInsufficientFundsError(quote.TotalCost, e.player.Cash)
	}

	day := e.clock.Now().Day
	shelfLife := e.cfg.ExpirationMinDays + e.rng.Intn(e.cfg.ExpirationMaxDays-e.cfg.ExpirationMinDays+1)
	lot := game.GiftCardLot{
		RetailerID:    p.RetailerID,
		Denomination:  p.Denomination,
		UnitCost:      quote.UnitCost,
		Quantity:      p.Quantity,
		PurchaseDay:   day,
		ExpirationDay: day + shelfLife,
	}
	if err := e.inv.AddLot(lot); err != nil {
		return err
	}

	e.player.Cash -= quote.TotalCost
	e.stats.RecordPurchase(quote.TotalCost)
	e.feed.Append(e.clock.Now(), fmt.Sprintf("Bought %dx %s $%d cards for %s", p.Quantity, p.RetailerID, p.Denomination, quote.TotalCost))
	e.log.Info("purchase applied",
		"retailer", p.RetailerID,
		"denomination", p.Denomination,
		"quantity", p.Quantity,
		"cost", quote.TotalCost.String(),
		"cash", e.player.Cash.String(),
	)
	return nil
}

func (e *Engine) applyAccept(orderID int64) error {
	order, costBasis, err := e.book.AcceptAndFulfill(orderID, e.inv)
	if err != nil {
		return err
	}

	day := e.clock.Now().Day
	earliness := order.DeadlineDay - day
	gain := ReputationGainOnFulfill(earliness)

	e.player.Cash += order.OfferedPrice
	e.player.Reputation = ClampMillistars(e.player.Reputation + gain)

	cards := 0
	for _, line := range order.Items {
		cards += line.Quantity
	}
	e.stats.RecordFulfillment(order.OfferedPrice, costBasis, cards)
	e.feed.Append(e.clock.Now(), fmt.Sprintf("Fulfilled order #%d for %s, earned %s", order.ID, order.Customer, order.OfferedPrice))
	e.log.Info("order fulfilled",
		"order", order.ID,
		"revenue", order.OfferedPrice.String(),
		"cost_basis", costBasis.String(),
		"reputation_gain", gain,
	)
	return nil
}

func (e *Engine) applyDecline(orderID int64) error {
	order, err := e.book.Decline(orderID)
	if err != nil {
		return err
	}
	e.stats.RecordOrderDeclined()
	e.feed.Append(e.clock.Now(), fmt.Sprintf("Declined order #%d from %s", order.ID, order.Customer))
	return nil
}

// dailyPass runs the day-boundary work in a fixed order so replays are
// reproducible: expire inventory, expire orders, advance market conditions,
// generate arrivals, then roll the analytics day.
func (e *Engine) dailyPass(day int) {
	now := e.clock.Now()
	e.feed.Append(now, fmt.Sprintf("Day %d begins", day))

	for _, lot := range e.inv.AgeOneDay(day) {
		e.stats.RecordCardsExpired(lot.Quantity)
		e.feed.Append(now, fmt.Sprintf("%dx %s $%d cards expired unsold", lot.Quantity, lot.RetailerID, lot.Denomination))
	}

	for _, order := range e.book.ExpireOverdue(day) {
		loss := ReputationLossOnExpire(order.Priority)
		e.player.Reputation = ClampMillistars(e.player.Reputation - loss)
		e.stats.RecordOrderExpired()
		e.feed.Append(now, fmt.Sprintf("Order #%d from %s expired, reputation suffered", order.ID, order.Customer))
	}

	for _, msg := range e.cond.AdvanceDay(day, e.rng) {
		e.feed.Append(now, msg)
	}

	for _, order := range e.gen.GenerateForDay(day, e.player.Reputation, e.market, e.cond, e.rng) {
		e.book.Insert(order)
		e.feed.Append(now, fmt.Sprintf("New order #%d from %s for %s", order.ID, order.Customer, order.OfferedPrice))
	}

	e.stats.StartNewDay(day)
	e.log.Debug("daily pass complete",
		"day", day,
		"cash", e.player.Cash.String(),
		"reputation", e.player.Reputation,
		"active_orders", e.book.Len(),
	)
}

// commit publishes the current state as an immutable snapshot.
func (e *Engine) commit() {
	e.version++
	lots := e.inv.Lots()

	groupIdx := make(map[lineKey]int)
	var groups []InventoryGroup
	for _, lot := range lots {
		k := lineKey{retailerID: lot.RetailerID, denomination: lot.Denomination}
		i, ok := groupIdx[k]
		if !ok {
			groupIdx[k] = len(groups)
			groups = append(groups, InventoryGroup{
				RetailerID:    lot.RetailerID,
				Denomination:  lot.Denomination,
				Quantity:      lot.Quantity,
				SoonestExpiry: lot.ExpirationDay,
			})
			continue
		}
		groups[i].Quantity += lot.Quantity
		if lot.ExpirationDay < groups[i].SoonestExpiry {
			groups[i].SoonestExpiry = lot.ExpirationDay
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].RetailerID != groups[j].RetailerID {
			return groups[i].RetailerID < groups[j].RetailerID
		}
		return groups[i].Denomination < groups[j].Denomination
	})

	s := &Snapshot{
		Version:  e.version,
		Time:     e.clock.Now(),
		Paused:   e.clock.Paused(),
		Player:   e.player,
		Lots:     lots,
		Groups:   groups,
		Orders:   e.book.Active(),
		Activity: e.feed.Tail(0),
		Report:   e.stats.Report(),
		Season:   e.cond.Season(),
		Events:   e.cond.Active(),
	}
	e.snapshot.Store(s)
}
