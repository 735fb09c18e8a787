package api

import (
	"log"
	"net/http"
)

// HandleStartSession handles POST /api/session/start
// Issues {sessionId, secret, seed}; the secret is never sent again.
func HandleStartSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	creds, err := sessions.Create(r.Context())
	if err != nil {
		log.Printf("❌ Failed to create session: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	// The credentials carry the secret; log only the id.
	log.Printf("🎮 Issued session %s", creds.SessionID)

	sendJSON(w, creds)
}
