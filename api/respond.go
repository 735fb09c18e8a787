package api

import (
	"encoding/json"
	"net/http"

	"snakeServer/game"
)

// Handlers are wired once at startup; requests are short single-round-trip
// calls with no shared mutable state beyond the backing stores.
var (
	sessions    *game.SessionManager
	validator   *game.Validator
	submitter   *game.Submitter
	leaderboard *game.Leaderboard
)

// Setup injects the server components the handlers delegate to.
func Setup(s *game.SessionManager, v *game.Validator, sub *game.Submitter, l *game.Leaderboard) {
	sessions = s
	validator = v
	submitter = sub
	leaderboard = l
}

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func sendError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   message,
	})
}

func sendJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
