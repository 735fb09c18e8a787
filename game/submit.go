package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"snakeServer/config"
	"snakeServer/crypto"
)

// SubmitRequest binds a finalized session's validated score to a display
// name via signature #2, independent of the end-of-game signature.
type SubmitRequest struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
}

// SubmitResult reports the outcome of a score submission. Position is the
// new entry's 1-based rank when it lands in the visible top set, omitted
// otherwise.
type SubmitResult struct {
	Success  bool   `json:"success"`
	Position int    `json:"position,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Submitter is the score submission verifier: the second and final gate
// between a validated session and the public board.
type Submitter struct {
	sessions    *SessionManager
	leaderboard *Leaderboard

	// now is the server clock; replaceable in tests.
	now func() time.Time
}

func NewSubmitter(sessions *SessionManager, leaderboard *Leaderboard) *Submitter {
	return &Submitter{
		sessions:    sessions,
		leaderboard: leaderboard,
		now:         time.Now,
	}
}

func rejectSubmit(message string) SubmitResult {
	return SubmitResult{Success: false, Message: message}
}

// Submit verifies the submission against the finalized session and, on
// success, inserts the entry and returns its rank.
func (s *Submitter) Submit(ctx context.Context, req *SubmitRequest) (SubmitResult, error) {
	session, err := s.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return rejectSubmit("Invalid game session"), nil
	}

	if session.IsActive {
		// A name/score submission cannot precede end-of-game.
		return rejectSubmit("Game session is still active"), nil
	}

	if session.ValidatedScore == nil || *session.ValidatedScore != req.Score {
		// Blocks inflating the score at the naming step after a
		// smaller score was validated.
		return rejectSubmit("Submitted score does not match validated score"), nil
	}

	skew := s.now().UnixMilli() - req.Timestamp
	if skew < 0 {
		skew = -skew
	}
	if skew > config.MaxTimestampSkew.Milliseconds() {
		return rejectSubmit("Stale or invalid timestamp"), nil
	}

	payload := SubmitPayload(req.SessionID, req.Name, req.Score, req.Timestamp)
	match, err := crypto.VerifyPayload(session.Secret, payload, req.Signature)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("failed to compute signature: %w", err)
	}
	if !match {
		return rejectSubmit("Invalid signature"), nil
	}

	entry, position, err := s.leaderboard.Insert(ctx, req.Name, req.Score)
	if err != nil {
		return SubmitResult{}, err
	}

	log.Printf("🏆 Leaderboard entry %s (%s) scored %d at position %d",
		entry.ID, entry.Name, entry.Score, position)

	return SubmitResult{Success: true, Position: position}, nil
}
