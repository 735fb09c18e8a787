package game

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"snakeServer/config"
)

// Leaderboard inserts verified scores, computes ranks, and answers
// qualification queries. Ordering is score descending with earlier
// timestamp winning ties, applied identically everywhere ranks or the
// visible board are computed.
type Leaderboard struct {
	store LeaderboardStore
}

func NewLeaderboard(store LeaderboardStore) *Leaderboard {
	return &Leaderboard{store: store}
}

// NormalizeName maps any player-chosen name onto exactly three uppercase
// letters: uppercase, strip everything outside A-Z, truncate, right-pad
// with 'A'. Applied the same whether the name arrived signed or not.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			if b.Len() == config.NameLength {
				break
			}
		}
	}
	for b.Len() < config.NameLength {
		b.WriteRune(config.NamePadRune)
	}
	return b.String()
}

// rankedEntries returns all entries in board order.
func (l *Leaderboard) rankedEntries(ctx context.Context) ([]*LeaderboardEntry, error) {
	entries, err := l.store.AllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	if entries == nil {
		entries = []*LeaderboardEntry{}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

// Insert appends a new entry with a server-assigned timestamp and returns
// it along with its 1-based position in the full order. Position 0 means
// the entry landed outside the visible top set.
func (l *Leaderboard) Insert(ctx context.Context, name string, score int) (*LeaderboardEntry, int, error) {
	entry := &LeaderboardEntry{
		ID:        uuid.New().String(),
		Name:      NormalizeName(name),
		Score:     score,
		Timestamp: time.Now().UTC(),
	}
	if err := l.store.InsertEntry(ctx, entry); err != nil {
		return nil, 0, fmt.Errorf("failed to insert leaderboard entry: %w", err)
	}

	entries, err := l.rankedEntries(ctx)
	if err != nil {
		return nil, 0, err
	}
	for i, e := range entries {
		if e.ID == entry.ID {
			if i < config.LeaderboardSize {
				return entry, i + 1, nil
			}
			break
		}
	}
	return entry, 0, nil
}

// Top returns the visible board: the top N entries in ranked order. Pure
// read, no side effects.
func (l *Leaderboard) Top(ctx context.Context) ([]*LeaderboardEntry, error) {
	entries, err := l.rankedEntries(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) > config.LeaderboardSize {
		entries = entries[:config.LeaderboardSize]
	}
	return entries, nil
}

// Qualification is the answer to "would this score make the board".
type Qualification struct {
	Qualifies bool `json:"qualifies"`
	Threshold int  `json:"threshold"`
}

// Qualify computes the current qualification threshold and whether score
// meets it. With a full board, qualification is decided purely by beating
// the Nth-place score, without re-applying the base-value floor; the
// advertised threshold still includes it. Asymmetry kept for compatibility.
func (l *Leaderboard) Qualify(ctx context.Context, score int) (Qualification, error) {
	entries, err := l.rankedEntries(ctx)
	if err != nil {
		return Qualification{}, err
	}

	if len(entries) < config.LeaderboardSize {
		threshold := config.BaseQualifyingScore
		if len(entries) > 0 {
			lowest := entries[len(entries)-1].Score
			if lowest+1 > threshold {
				threshold = lowest + 1
			}
			return Qualification{
				Qualifies: score >= config.BaseQualifyingScore || score > lowest,
				Threshold: threshold,
			}, nil
		}
		return Qualification{
			Qualifies: score >= config.BaseQualifyingScore,
			Threshold: threshold,
		}, nil
	}

	nth := entries[config.LeaderboardSize-1].Score
	threshold := config.BaseQualifyingScore
	if nth+1 > threshold {
		threshold = nth + 1
	}
	return Qualification{
		Qualifies: score > nth,
		Threshold: threshold,
	}, nil
}
