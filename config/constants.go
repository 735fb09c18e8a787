package config

import (
	"os"
	"time"
)

/* =========================
   SCORING PROTOCOL
========================= */

const (
	// Points per food type. These are protocol constants: the client
	// computes its running score with the same values the validator
	// uses to recompute it, and any drift between the two breaks
	// every legitimate submission.
	RegularFoodPoints = 10
	GoldenFoodPoints  = 50
)

/* =========================
   VALIDATION FLOORS
========================= */

const (
	// MinGameDurationMs is the shortest game accepted in production.
	MinGameDurationMs = 2000

	// MinGameDurationDevMs is the relaxed floor outside production so
	// local testing doesn't require sitting through full games.
	MinGameDurationDevMs = 250

	// MinMoveCount is the minimum number of move events in a valid game.
	MinMoveCount = 5

	// MinMoveIntervalMs is the minimum gap between consecutive moves.
	// Anything faster than this is bot-speed input.
	MinMoveIntervalMs = 50

	// MaxFoodIntervalMs caps food consumption at one food per interval.
	MaxFoodIntervalMs = 500
)

/* =========================
   SCORE SUBMISSION
========================= */

const (
	// MaxTimestampSkew bounds how far a submission timestamp may drift
	// from server time, in either direction. Limits replay of an old
	// but otherwise valid submission signature.
	MaxTimestampSkew = 5 * time.Minute

	// NameLength is the exact display-name length on the board.
	NameLength = 3

	// NamePadRune right-pads short display names to NameLength.
	NamePadRune = 'A'
)

/* =========================
   LEADERBOARD
========================= */

const (
	// LeaderboardSize is the number of visible ranked entries.
	LeaderboardSize = 10

	// BaseQualifyingScore is the advertised minimum score for a
	// leaderboard spot while the board is not yet full.
	BaseQualifyingScore = 100

	// LeaderboardCacheTTL is how long the cached top-N board stays
	// valid in Redis before a read falls through to PostgreSQL.
	LeaderboardCacheTTL = 10 * time.Second
)

/* =========================
   ENVIRONMENT
========================= */

// IsProduction reports whether the server runs with production
// validation floors (full duration floor, food-rate ceiling enabled).
func IsProduction() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

// ListenAddr returns the HTTP listen address, defaulting to :8080.
func ListenAddr() string {
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		return addr
	}
	return "0.0.0.0:8080"
}
