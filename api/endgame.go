package api

import (
	"encoding/json"
	"log"
	"net/http"

	"snakeServer/game"
)

// HandleEndGame handles POST /api/game/end
// Body: {sessionId, signature, finalScore, events, foods, durationMs}.
// Missing events/foods default to empty lists, durationMs to 0 — those
// defaults still fail validation, they just fail with a report instead of
// a decode error.
func HandleEndGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req game.EndGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SessionID == "" {
		sendError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	result, err := validator.EndSession(r.Context(), &req)
	if err != nil {
		// Store failure, not a validation verdict: the client may retry.
		log.Printf("❌ End-of-game for session %s failed: %v", req.SessionID, err)
		sendError(w, http.StatusInternalServerError, "Failed to process end of game")
		return
	}

	if !result.Success {
		log.Printf("🚫 Rejected end-of-game for session %s: %s", req.SessionID, result.Message)
	}

	sendJSON(w, result)
}
