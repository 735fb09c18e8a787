package api

import (
	"log"
	"net/http"
	"strconv"

	"snakeServer/db"
)

// HandleGetLeaderboard handles GET /api/leaderboard
// Returns the top 10 entries in ranked order, cache-first.
func HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx := r.Context()

	entries, err := db.GetCachedLeaderboard(ctx)
	if err != nil {
		log.Printf("⚠️  Leaderboard cache read failed: %v", err)
	}

	if entries == nil {
		entries, err = leaderboard.Top(ctx)
		if err != nil {
			log.Printf("❌ Failed to get leaderboard: %v", err)
			sendError(w, http.StatusInternalServerError, "Failed to retrieve leaderboard")
			return
		}
		if err := db.CacheLeaderboard(ctx, entries); err != nil {
			log.Printf("⚠️  Failed to cache leaderboard: %v", err)
		}
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	sendJSON(w, map[string]any{
		"success":     true,
		"leaderboard": entries,
	})
}

// HandleQualify handles GET /api/leaderboard/qualify?score=N
// Answers whether score would currently earn a board position.
func HandleQualify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	scoreParam := r.URL.Query().Get("score")
	if scoreParam == "" {
		sendError(w, http.StatusBadRequest, "Score is required")
		return
	}

	score, err := strconv.Atoi(scoreParam)
	if err != nil || score < 0 {
		sendError(w, http.StatusBadRequest, "Score must be a non-negative integer")
		return
	}

	qualification, err := leaderboard.Qualify(r.Context(), score)
	if err != nil {
		log.Printf("❌ Failed to compute qualification: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to compute qualification")
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	sendJSON(w, qualification)
}
