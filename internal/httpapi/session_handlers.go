package httpapi

import (
	"net/http"

	"jobfinder-engine/internal/events"
	"jobfinder-engine/internal/session"
)

type SessionHandler struct {
	Sessions *session.Registry
	Hub      *events.Hub
}

// End drops the session and its cached result sets. Idempotent: ending an
// unknown or already-ended session still returns ok.
func (h SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(SessionHeader)
	if id != "" {
		h.Sessions.End(id)
		h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeSessionCleared, map[string]any{"session_id": id})
	}
	writeJSON(w, map[string]any{"ok": true})
}
