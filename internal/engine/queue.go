package engine

import "sync"

// CommandType distinguishes player command kinds.
type CommandType int

const (
	// CommandPurchase buys a lot of gift cards from the wholesale market.
	CommandPurchase CommandType = iota + 1
	// CommandAcceptOrder fulfills an active customer order from inventory.
	CommandAcceptOrder
	// CommandDeclineOrder removes an active order without fulfilling it.
	CommandDeclineOrder
	// CommandPause halts the simulation clock.
	CommandPause
	// CommandResume restarts the simulation clock.
	CommandResume
)

// PurchaseCommand is the payload for CommandPurchase.
type PurchaseCommand struct {
	RetailerID   string
	Denomination int
	Quantity     int
}

// Command is a player action submitted to the engine. Commands are applied
// in submission order at the start of the next tick.
type Command struct {
	Type     CommandType
	Purchase *PurchaseCommand
	OrderID  int64

	// Reply, when non-nil, receives the command's outcome (nil on success).
	// Must be buffered; the engine sends without blocking.
	Reply chan error
}

// commandQueue is a thread-safe FIFO queue for player commands.
//
// Thread-safety covers external enqueuing (UI, autosave, tests) while the
// engine's tick path dequeues. The queue is unbounded; command volume is
// human-scale.
//
// A buffered size-1 signal channel lets a host loop wait for work without
// polling while staying responsive to context cancellation.
type commandQueue struct {
	mu       sync.Mutex
	commands []Command
	closed   bool
	signal   chan struct{}
}

func newCommandQueue() *commandQueue {
	return &commandQueue{
		commands: make([]Command, 0, 16),
		signal:   make(chan struct{}, 1),
	}
}

// Enqueue adds a command to the back of the queue.
// Thread-safe: may be called from any goroutine.
// Returns false if the queue is closed.
func (q *commandQueue) Enqueue(c Command) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.commands = append(q.commands, c)

	// Non-blocking: the size-1 buffer coalesces repeated signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}

	return true
}

// TryDequeue attempts to dequeue without blocking.
// Returns (Command{}, false) if the queue is empty.
func (q *commandQueue) TryDequeue() (Command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.commands) == 0 {
		return Command{}, false
	}

	c := q.commands[0]

	// Nil out the slot so the Reply channel and payload pointers are
	// collectable while the backing array is reused.
	q.commands[0] = Command{}

	if len(q.commands) == 1 {
		q.commands = q.commands[:0]
	} else {
		q.commands = q.commands[1:]
	}

	return c, true
}

// Wait returns a channel that signals when commands may be available.
// Use with select alongside ctx.Done() for context-aware waiting.
func (q *commandQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the current queue length.
func (q *commandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.commands)
}

// Close marks the queue closed and wakes any blocked waiters.
func (q *commandQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.signal)
}
