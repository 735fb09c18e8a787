package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"snakeServer/crypto"
)

// SessionManager creates sessions, retrieves them, and performs the one-way
// active→finalized transition against the backing store.
type SessionManager struct {
	store SessionStore
}

func NewSessionManager(store SessionStore) *SessionManager {
	return &SessionManager{store: store}
}

// SessionCredentials is the triple returned to the client at session start.
// The secret appears here and nowhere else again.
type SessionCredentials struct {
	SessionID string `json:"sessionId"`
	Secret    string `json:"secret"`
	Seed      uint32 `json:"seed"`
}

// Create generates a fresh secret and seed, persists a new active session,
// and returns the credentials. The returned secret is the only copy the
// client will ever receive.
func (m *SessionManager) Create(ctx context.Context) (*SessionCredentials, error) {
	secret, err := crypto.GenerateSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}

	seed, err := crypto.GenerateSeed()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session seed: %w", err)
	}

	session := &GameSession{
		ID:        uuid.New().String(),
		Secret:    secret,
		Seed:      seed,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := m.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &SessionCredentials{
		SessionID: session.ID,
		Secret:    secret,
		Seed:      seed,
	}, nil
}

// Get looks up a session by id. Returns (nil, nil) for unknown ids.
func (m *SessionManager) Get(ctx context.Context, id string) (*GameSession, error) {
	return m.store.GetSession(ctx, id)
}

// Finalize performs the atomic active→finalized transition, storing the
// validated score. Returns false when the session was already finalized.
func (m *SessionManager) Finalize(ctx context.Context, id string, validatedScore int) (bool, error) {
	return m.store.FinalizeSession(ctx, id, validatedScore)
}
