package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"jobfinder-engine/internal/config"
	"jobfinder-engine/internal/digest"
	"jobfinder-engine/internal/events"
	"jobfinder-engine/internal/secrets"
	"jobfinder-engine/internal/session"
)

type DigestHandler struct {
	CfgVal   *atomic.Value // stores config.Config
	Sessions *session.Registry
	Hub      *events.Hub
}

type digestReq struct {
	To string `json:"to"`
}

// Send mails the session's current result set to the given address.
func (h DigestHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req digestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	sess := ensureSession(h.Sessions, w, r)
	rs, ok := sess.Current()
	if !ok || len(rs) == 0 {
		WriteError(w, r, http.StatusNotFound, "no_results", "no result set to send")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	s := digest.Sender{Cfg: cfg, Password: func() (string, error) { return secrets.GetSMTPPassword(cfg) }}
	if err := s.SendDigest(req.To, rs); err != nil {
		WriteError(w, r, http.StatusBadGateway, "digest_error", err.Error())
		return
	}

	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeDigestSent,
		map[string]any{"to": req.To, "count": len(rs)})
	writeJSON(w, map[string]any{"ok": true, "count": len(rs)})
}

// Test sends a minimal message to verify SMTP settings.
func (h DigestHandler) Test(w http.ResponseWriter, r *http.Request) {
	var req digestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	s := digest.Sender{Cfg: cfg, Password: func() (string, error) { return secrets.GetSMTPPassword(cfg) }}
	if err := s.SendTest(req.To); err != nil {
		WriteError(w, r, http.StatusBadGateway, "digest_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
