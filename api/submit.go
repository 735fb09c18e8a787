package api

import (
	"encoding/json"
	"log"
	"net/http"

	"snakeServer/db"
	"snakeServer/game"
	"snakeServer/ws"
)

// HandleSubmitScore handles POST /api/score/submit
// Body: {sessionId, name, score, timestamp, signature}.
func HandleSubmitScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req game.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SessionID == "" {
		sendError(w, http.StatusBadRequest, "Session ID is required")
		return
	}
	if req.Name == "" {
		sendError(w, http.StatusBadRequest, "Name is required")
		return
	}

	result, err := submitter.Submit(r.Context(), &req)
	if err != nil {
		log.Printf("❌ Score submission for session %s failed: %v", req.SessionID, err)
		sendError(w, http.StatusInternalServerError, "Failed to process score submission")
		return
	}

	if result.Success {
		// New entry changes the board: drop the cache and notify the feed.
		db.InvalidateLeaderboardCache(r.Context())
		ws.BroadcastNewEntry(game.NormalizeName(req.Name), req.Score, result.Position)
	} else {
		log.Printf("🚫 Rejected score submission for session %s: %s", req.SessionID, result.Message)
	}

	sendJSON(w, result)
}
