package game

import (
	"context"
	"sort"
	"sync"
)

// memStore is an in-memory stand-in for the backing store, with the same
// per-record atomicity the real store promises.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*GameSession
	entries  []*LeaderboardEntry
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*GameSession)}
}

func (s *memStore) CreateSession(ctx context.Context, session *GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *memStore) GetSession(ctx context.Context, id string) (*GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	if session.ValidatedScore != nil {
		score := *session.ValidatedScore
		copied.ValidatedScore = &score
	}
	return &copied, nil
}

func (s *memStore) FinalizeSession(ctx context.Context, id string, validatedScore int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok || !session.IsActive {
		return false, nil
	}
	session.IsActive = false
	session.ValidatedScore = &validatedScore
	return true, nil
}

func (s *memStore) InsertEntry(ctx context.Context, entry *LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *entry
	s.entries = append(s.entries, &copied)
	return nil
}

func (s *memStore) AllEntries(ctx context.Context) ([]*LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*LeaderboardEntry, len(s.entries))
	copy(out, s.entries)
	// The real store serves entries through a score index.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
