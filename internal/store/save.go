package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

// ErrNoSave indicates a session has no saved snapshots.
var ErrNoSave = errors.New("no save found for session")

// SessionIDGenerator produces session identifiers. Injected so tests can
// use predetermined ids.
type SessionIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session ids, so sessions
// listed by id are also listed by creation time.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined session ids for testing.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator returning ids in order.
// Generate panics when the ids are exhausted, failing fast on test
// misconfiguration.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// Session is a stored game session.
type Session struct {
	ID        string
	Preset    string
	Seed      int64
	CreatedAt string
}

// Save is a stored snapshot row.
type Save struct {
	SessionID string
	Version   int64
	Time      game.GameTime
	Snapshot  []byte
	CreatedAt string
}

// CreateSession records a new session and returns its id.
func (s *Store) CreateSession(ctx context.Context, gen SessionIDGenerator, preset string, seed int64) (string, error) {
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	id := gen.Generate()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, preset, seed) VALUES (?, ?, ?)`,
		id, preset, seed,
	)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// WriteSave stores a snapshot for a session. Idempotent per (session,
// version): rewriting an already-saved version is a no-op, which makes
// autosave safe to retry.
func (s *Store) WriteSave(ctx context.Context, sessionID string, version int64, t game.GameTime, snapshot []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saves (session_id, version, day, minute, snapshot)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(session_id, version) DO NOTHING`,
		sessionID, version, t.Day, t.MinuteOfDay, snapshot,
	)
	if err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// LatestSave returns the highest-version save for a session.
// Returns ErrNoSave when the session has no saves.
func (s *Store) LatestSave(ctx context.Context, sessionID string) (*Save, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT session_id, version, day, minute, snapshot, created_at
		 FROM saves
		 WHERE session_id = ?
		 ORDER BY version DESC
		 LIMIT 1`,
		sessionID,
	)

	var save Save
	err := row.Scan(&save.SessionID, &save.Version, &save.Time.Day, &save.Time.MinuteOfDay, &save.Snapshot, &save.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("latest save: %w", err)
	}
	return &save, nil
}

// ListSessions returns every session, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, preset, seed, created_at FROM sessions ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Preset, &sess.Seed, &sess.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
