package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"snakeServer/api"
	"snakeServer/config"
	"snakeServer/db"
	"snakeServer/game"
	"snakeServer/ws"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables")
	} else {
		log.Println("✅ Loaded environment variables from .env")
	}

	// Initialize database connections
	if err := db.InitPostgres(); err != nil {
		log.Fatalf("❌ PostgreSQL initialization failed: %v", err)
	}
	defer db.ClosePostgres()

	if err := db.InitRedis(); err != nil {
		log.Printf("⚠️  Warning: Redis initialization failed: %v", err)
		log.Println("   Leaderboard reads will skip the cache")
	}
	defer db.CloseRedis()

	// Wire server components onto the Postgres store
	store := db.Store{}
	sessions := game.NewSessionManager(store)
	validator := game.NewValidator(sessions)
	leaderboard := game.NewLeaderboard(store)
	submitter := game.NewSubmitter(sessions, leaderboard)
	api.Setup(sessions, validator, submitter, leaderboard)

	// WebSocket endpoints
	http.HandleFunc("/ws/leaderboard", ws.HandleFeedWS)

	// API endpoints
	http.HandleFunc("/api/session/start", api.HandleStartSession)
	http.HandleFunc("/api/game/end", api.HandleEndGame)
	http.HandleFunc("/api/score/submit", api.HandleSubmitScore)
	http.HandleFunc("/api/leaderboard", api.HandleGetLeaderboard)
	http.HandleFunc("/api/leaderboard/qualify", api.HandleQualify)
	http.HandleFunc("/api/health", api.HandleHealthCheck)

	addr := config.ListenAddr()
	log.Printf("🚀 Server starting on %s", addr)
	if config.IsProduction() {
		log.Println("🔒 Production validation floors enabled")
	} else {
		log.Println("🔧 Development mode: relaxed duration floor, food-rate check off")
	}
	log.Println("")
	log.Println("🔌 API Endpoints:")
	log.Println("   POST /api/session/start - Start a play session")
	log.Println("   POST /api/game/end - Validate and finalize a game")
	log.Println("   POST /api/score/submit - Submit a name for a validated score")
	log.Println("   GET  /api/leaderboard - Current top 10")
	log.Println("   GET  /api/leaderboard/qualify?score=N - Qualification check")
	log.Println("   GET  /api/health - Health check (Redis + PostgreSQL)")
	log.Println("")
	log.Println("📡 WebSocket Endpoints:")
	log.Println("   ws://localhost:8080/ws/leaderboard - Live board feed")
	log.Println("")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal("❌ Server error:", err)
	}
}
