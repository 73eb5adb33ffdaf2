package engine

import "github.com/gramidt/vibe-card-empire/internal/game"

// DefaultActivityCapacity bounds the activity feed kept for the UI.
const DefaultActivityCapacity = 64

// activityLog is an append-only, bounded ring of human-readable event
// records. The oldest record is evicted first when the ring is full.
//
// Owned by the engine; written only from the tick path.
type activityLog struct {
	records  []game.ActivityRecord
	capacity int
}

func newActivityLog(capacity int) *activityLog {
	if capacity <= 0 {
		capacity = DefaultActivityCapacity
	}
	return &activityLog{
		records:  make([]game.ActivityRecord, 0, capacity),
		capacity: capacity,
	}
}

// Append records a message at the given simulated instant, evicting the
// oldest record when over capacity.
func (l *activityLog) Append(t game.GameTime, message string) {
	if len(l.records) == l.capacity {
		copy(l.records, l.records[1:])
		l.records = l.records[:l.capacity-1]
	}
	l.records = append(l.records, game.ActivityRecord{
		Day:     t.Day,
		Minute:  t.MinuteOfDay,
		Message: message,
	})
}

// Tail returns up to n records, newest first, as a copy.
func (l *activityLog) Tail(n int) []game.ActivityRecord {
	if n <= 0 || n > len(l.records) {
		n = len(l.records)
	}
	out := make([]game.ActivityRecord, n)
	for i := 0; i < n; i++ {
		out[i] = l.records[len(l.records)-1-i]
	}
	return out
}

// Len returns the number of retained records.
func (l *activityLog) Len() int { return len(l.records) }
