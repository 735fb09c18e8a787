package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"snakeServer/db"
	"snakeServer/game"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found")
	}

	if os.Getenv("DATABASE_URL") == "" {
		log.Fatal("DATABASE_URL not set")
	}

	// Init postgres
	if err := db.InitPostgres(); err != nil {
		log.Fatalf("Failed to init postgres: %v", err)
	}
	defer db.ClosePostgres()

	ctx := context.Background()

	// Sample board covering the full score range, inserted oldest-first so
	// tie-breaks are visible
	samples := []struct {
		name  string
		score int
	}{
		{"ACE", 480},
		{"BOB", 430},
		{"CAT", 380},
		{"DOT", 330},
		{"EEL", 330},
		{"FOX", 260},
		{"GUS", 210},
		{"HAL", 160},
		{"IVY", 130},
		{"JAX", 100},
	}

	fmt.Println("Seeding leaderboard with sample data...")

	base := time.Now().UTC().Add(-time.Duration(len(samples)) * time.Minute)
	for i, s := range samples {
		entry := &game.LeaderboardEntry{
			ID:        uuid.New().String(),
			Name:      game.NormalizeName(s.name),
			Score:     s.score,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.InsertLeaderboardEntry(ctx, entry); err != nil {
			log.Printf("Failed to insert %s: %v", s.name, err)
		} else {
			fmt.Printf("  %s -> %d\n", entry.Name, entry.Score)
		}
	}

	fmt.Println("\nDone! Testing leaderboard...")

	// Verify through the engine so ordering matches what the API serves
	board := game.NewLeaderboard(db.Store{})
	entries, err := board.Top(ctx)
	if err != nil {
		log.Fatalf("Failed to get leaderboard: %v", err)
	}

	fmt.Printf("\nLeaderboard (%d entries):\n", len(entries))
	for i, e := range entries {
		fmt.Printf("  #%d %s %d\n", i+1, e.Name, e.Score)
	}
}
