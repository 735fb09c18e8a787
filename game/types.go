package game

import (
	"context"
	"time"
)

// Direction is a snake move direction as recorded by the client.
type Direction string

const (
	DirUp    Direction = "UP"
	DirDown  Direction = "DOWN"
	DirLeft  Direction = "LEFT"
	DirRight Direction = "RIGHT"
)

// ValidDirection reports whether d is one of the four protocol directions.
func ValidDirection(d Direction) bool {
	switch d {
	case DirUp, DirDown, DirLeft, DirRight:
		return true
	}
	return false
}

// GameSession is one play session. The secret is issued to the client once
// at creation and never re-sent or logged; secret and seed are fixed for
// the session's lifetime. ValidatedScore is write-once, set atomically with
// the active→finalized transition.
type GameSession struct {
	ID             string    `json:"id"`
	Secret         string    `json:"-"`
	Seed           uint32    `json:"seed"`
	IsActive       bool      `json:"isActive"`
	ValidatedScore *int      `json:"validatedScore,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MoveEvent is one direction change, timestamped in milliseconds since
// session start by the client's local clock.
type MoveEvent struct {
	T         int64     `json:"t"`
	Direction Direction `json:"direction"`
}

// FoodEvent is one food consumption, same timestamp model as MoveEvent.
type FoodEvent struct {
	T        int64 `json:"t"`
	IsGolden bool  `json:"isGolden"`
}

// LeaderboardEntry is a ranked board record. Entries are never mutated or
// deleted once inserted.
type LeaderboardEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// EndGamePayload builds the exact structure both sides sign at end of game.
// Client and server must call this with the same logical values to hash
// identical canonical bytes.
func EndGamePayload(sessionID string, finalScore int, events []MoveEvent, foods []FoodEvent, durationMs int64) map[string]any {
	if events == nil {
		events = []MoveEvent{}
	}
	if foods == nil {
		foods = []FoodEvent{}
	}
	return map[string]any{
		"sessionId":  sessionID,
		"finalScore": finalScore,
		"events":     events,
		"foods":      foods,
		"durationMs": durationMs,
	}
}

// SubmitPayload builds the structure signed for a name/score submission.
// Deliberately a different shape from EndGamePayload so the two signatures
// are independent.
func SubmitPayload(sessionID, name string, score int, timestamp int64) map[string]any {
	return map[string]any{
		"sessionId": sessionID,
		"name":      name,
		"score":     score,
		"timestamp": timestamp,
	}
}

/* =========================
   STORE CONTRACTS
========================= */

// SessionStore is the persistent session record store. The backing store's
// per-record atomicity is the only concurrency control this design relies
// on: FinalizeSession must be a single atomic compare-and-set so two
// concurrent finalize attempts cannot both succeed.
type SessionStore interface {
	// CreateSession persists a new active session.
	CreateSession(ctx context.Context, session *GameSession) error

	// GetSession returns the session or (nil, nil) when unknown. An
	// unknown id is a normal outcome, not an error.
	GetSession(ctx context.Context, id string) (*GameSession, error)

	// FinalizeSession flips is_active to false and stores the validated
	// score in one atomic operation. Returns false when the session was
	// not active (already finalized or unknown).
	FinalizeSession(ctx context.Context, id string, validatedScore int) (bool, error)
}

// LeaderboardStore persists board entries and serves them sorted by score
// descending (the store's indexed read primitive). Tie-break ordering is
// the engine's job.
type LeaderboardStore interface {
	InsertEntry(ctx context.Context, entry *LeaderboardEntry) error
	AllEntries(ctx context.Context) ([]*LeaderboardEntry, error)
}
