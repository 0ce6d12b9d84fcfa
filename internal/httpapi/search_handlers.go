package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"jobfinder-engine/internal/config"
	"jobfinder-engine/internal/domain"
	"jobfinder-engine/internal/events"
	"jobfinder-engine/internal/export"
	"jobfinder-engine/internal/query"
	"jobfinder-engine/internal/search"
	"jobfinder-engine/internal/session"
	"jobfinder-engine/internal/stats"
)

// SessionHeader carries the session id. Requests without one (or with an
// expired id) get a fresh session; the id is always echoed back.
const SessionHeader = "X-Session-ID"

type SearchHandler struct {
	CfgVal   *atomic.Value // stores config.Config
	Sessions *session.Registry
	Searcher *search.Service
	Hub      *events.Hub
}

type searchResponse struct {
	SessionID   string           `json:"session_id"`
	Fingerprint string           `json:"fingerprint"`
	Count       int              `json:"count"`
	Results     domain.ResultSet `json:"results"`
}

func (h SearchHandler) Run(w http.ResponseWriter, r *http.Request) {
	var crit domain.SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&crit); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	crit = crit.Normalize()
	if err := crit.Validate(); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_criteria", err.Error())
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	sess := ensureSession(h.Sessions, w, r)
	reqID := RequestIDFrom(r.Context())

	h.Hub.Emit(reqID, events.TypeSearchStarted, map[string]any{"keywords": crit.Keywords})

	rs, err := h.Searcher.Run(r.Context(), cfg, sess, crit)
	if err != nil {
		// Non-fatal: the UI shows this inline and returns to the form.
		h.Hub.Emit(reqID, events.TypeSearchFailed, map[string]any{"error": err.Error()})
		WriteError(w, r, http.StatusBadGateway, "provider_error", err.Error())
		return
	}

	fp := query.Fingerprint(crit)
	h.Hub.Emit(reqID, events.TypeSearchDone, map[string]any{"count": len(rs)})
	writeJSON(w, searchResponse{
		SessionID:   sess.ID(),
		Fingerprint: fp,
		Count:       len(rs),
		Results:     rs,
	})
}

// Results returns the currently displayed result set, optionally narrowed
// by ?tag=. An empty set is a normal response, not an error.
func (h SearchHandler) Results(w http.ResponseWriter, r *http.Request) {
	sess := ensureSession(h.Sessions, w, r)
	rs, _ := sess.Current()
	if tag := r.URL.Query().Get("tag"); tag != "" {
		rs = stats.FilterByTag(rs, tag)
	}
	if rs == nil {
		rs = domain.ResultSet{}
	}
	writeJSON(w, rs)
}

func (h SearchHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	sess := ensureSession(h.Sessions, w, r)
	rs, ok := sess.Current()
	if !ok {
		WriteError(w, r, http.StatusNotFound, "no_results", "no result set to export")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename("jobs")+`"`)
	if err := export.WriteResultSet(w, rs); err != nil {
		// headers already sent; nothing sensible left to do
		return
	}
}

func (h SearchHandler) Stats(w http.ResponseWriter, r *http.Request) {
	sess := ensureSession(h.Sessions, w, r)
	rs, _ := sess.Current()
	writeJSON(w, stats.Summarize(rs))
}

func ensureSession(reg *session.Registry, w http.ResponseWriter, r *http.Request) *session.Session {
	sess := reg.Ensure(r.Header.Get(SessionHeader))
	w.Header().Set(SessionHeader, sess.ID())
	return sess
}
