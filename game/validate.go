package game

import (
	"context"
	"fmt"
	"log"

	"snakeServer/config"
	"snakeServer/crypto"
)

// EndGameRequest is the end-of-game submission from the client: the claimed
// final score, the full event log, and signature #1 over all of it.
type EndGameRequest struct {
	SessionID  string      `json:"sessionId"`
	Signature  string      `json:"signature"`
	FinalScore int         `json:"finalScore"`
	Events     []MoveEvent `json:"events"`
	Foods      []FoodEvent `json:"foods"`
	DurationMs int64       `json:"durationMs"`
}

// EndGameResult is the validator's user-facing outcome. A failed check is a
// reported rejection, not an error; errors are reserved for store failures.
type EndGameResult struct {
	Success        bool   `json:"success"`
	ValidatedScore *int   `json:"validatedScore,omitempty"`
	Message        string `json:"message,omitempty"`
}

// Validator is the anti-cheat core: it reconciles a claimed final score
// against the replayed event log without re-simulating the game. It checks
// aggregate statistics only — pacing, ordering, consumption rate, score
// arithmetic — which catches corrupted logs and lazy forgeries but not a
// forger who invents a fully self-consistent event log. That tradeoff is
// intentional: a cheap server-side check instead of deterministic replay.
type Validator struct {
	sessions *SessionManager

	// Production enables the full duration floor and the food-rate
	// ceiling. Off in development so short local games validate.
	Production bool
}

func NewValidator(sessions *SessionManager) *Validator {
	return &Validator{sessions: sessions, Production: config.IsProduction()}
}

func reject(message string) EndGameResult {
	return EndGameResult{Success: false, Message: message}
}

// EndSession validates the claimed game and finalizes the session on
// success. Checks run in order and short-circuit on the first failure.
func (v *Validator) EndSession(ctx context.Context, req *EndGameRequest) (EndGameResult, error) {
	session, err := v.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return EndGameResult{}, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return reject("Invalid game session"), nil
	}

	if !session.IsActive {
		// Also blocks replaying an old end-of-game request.
		return reject("Game session is not active"), nil
	}

	payload := EndGamePayload(req.SessionID, req.FinalScore, req.Events, req.Foods, req.DurationMs)
	match, err := crypto.VerifyPayload(session.Secret, payload, req.Signature)
	if err != nil {
		return EndGameResult{}, fmt.Errorf("failed to compute signature: %w", err)
	}
	if !match {
		return reject("Invalid signature"), nil
	}

	minDuration := int64(config.MinGameDurationDevMs)
	if v.Production {
		minDuration = config.MinGameDurationMs
	}
	if req.DurationMs < minDuration {
		return reject("Game too short to be valid"), nil
	}

	if len(req.Events) < config.MinMoveCount {
		return reject("Too few moves recorded"), nil
	}

	if req.Events[0].T < 0 {
		return reject("Invalid event ordering"), nil
	}
	for i := 1; i < len(req.Events); i++ {
		prev, curr := req.Events[i-1], req.Events[i]
		if curr.T <= prev.T {
			return reject("Invalid event ordering"), nil
		}
		if curr.T-prev.T < config.MinMoveIntervalMs {
			return reject("Move too fast"), nil
		}
	}

	if ComputeScore(req.Foods) != req.FinalScore {
		return reject("Score does not match food events"), nil
	}

	if v.Production {
		maxFoods := req.DurationMs / config.MaxFoodIntervalMs
		if int64(len(req.Foods)) > maxFoods {
			return reject("Unrealistic food consumption rate"), nil
		}
	}

	finalized, err := v.sessions.Finalize(ctx, req.SessionID, req.FinalScore)
	if err != nil {
		return EndGameResult{}, fmt.Errorf("failed to finalize session: %w", err)
	}
	if !finalized {
		// Lost the race against a concurrent end-of-game call.
		return reject("Game session is not active"), nil
	}

	log.Printf("✅ Session %s finalized with score %d (%d moves, %d foods, %dms)",
		req.SessionID, req.FinalScore, len(req.Events), len(req.Foods), req.DurationMs)

	score := req.FinalScore
	return EndGameResult{Success: true, ValidatedScore: &score}, nil
}

// ComputeScore recomputes the score implied by a food-event list using the
// protocol point values.
func ComputeScore(foods []FoodEvent) int {
	score := 0
	for _, f := range foods {
		if f.IsGolden {
			score += config.GoldenFoodPoints
		} else {
			score += config.RegularFoodPoints
		}
	}
	return score
}
