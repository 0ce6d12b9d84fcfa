package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"jobfinder-engine/internal/domain"
	"jobfinder-engine/internal/events"
	"jobfinder-engine/internal/export"
	"jobfinder-engine/internal/store"
)

type SavedHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListSavedJobs(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if jobs == nil {
		jobs = []store.SavedJob{}
	}
	writeJSON(w, jobs)
}

func (h SavedHandler) Save(w http.ResponseWriter, r *http.Request) {
	var j domain.JobListing
	if err := json.NewDecoder(r.Body).Decode(&j); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if j.Title == "" || j.Company == "" || j.ApplyLink == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_listing", "title, company and applyLink are required")
		return
	}

	saved, inserted, err := store.SaveJob(r.Context(), h.DB, j)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if inserted {
		h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeJobSaved,
			map[string]any{"id": saved.ID, "title": j.Title, "company": j.Company})
	}
	writeJSON(w, map[string]any{"saved": inserted, "job": saved})
}

// DeleteByPath handles DELETE /saved/{id}.
func (h SavedHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/saved/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "saved job id must be a positive integer")
		return
	}
	if err := store.DeleteSavedJob(r.Context(), h.DB, id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeJobUnsaved, map[string]any{"id": id})
	writeJSON(w, map[string]any{"ok": true})
}

func (h SavedHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListSavedJobs(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename("saved_jobs")+`"`)
	_ = export.WriteSavedJobs(w, jobs)
}
