package query

import (
	"strings"

	"jobfinder-engine/internal/config"
	"jobfinder-engine/internal/domain"
)

// ProviderQuery is one provider round trip. Flag records which season/role
// combination produced it so listings can be grouped for display.
type ProviderQuery struct {
	Query      string
	Flag       string
	RemoteOnly bool
}

// Params are passed through to the provider unchanged per query. The result
// cap is applied after enrichment, not here; the provider has no page-size
// knob beyond num_pages.
type Params struct {
	NumPages   int
	DatePosted string
}

const maxKeywordLen = 100

var seasonTerms = map[domain.Season]string{
	domain.SeasonFall2025:   "fall 2025",
	domain.SeasonSpring2026: "spring 2026",
	domain.SeasonSummer2026: "summer 2026",
}

var seasonLabels = map[domain.Season]string{
	domain.SeasonFall2025:   "Fall 2025 Internship",
	domain.SeasonSpring2026: "Spring 2026 Internship",
	domain.SeasonSummer2026: "Summer 2026 Internship",
	domain.SeasonAny:        "Internship",
}

const entryLevelLabel = "Entry-Level / New-Grad Full-Time"

// Build expands criteria into provider queries. Deterministic: identical
// criteria always yield identical queries, in the same order. There are no
// error conditions; unusable keywords degrade to a role-category-only query.
func Build(cfg config.Config, crit domain.SearchCriteria) ([]ProviderQuery, Params) {
	crit = crit.Normalize()

	keywords := cleanKeywords(crit.Keywords)
	location := strings.Join(strings.Fields(crit.Location), " ")
	remoteOnly := crit.LocationMode == domain.RemoteOnly

	var queries []ProviderQuery
	if crit.RoleCategory == domain.RoleInternship || crit.RoleCategory == domain.RoleBoth {
		queries = append(queries, ProviderQuery{
			Query:      assemble(keywords, internTerms(crit.Season), location, remoteOnly),
			Flag:       seasonLabels[crit.Season],
			RemoteOnly: remoteOnly,
		})
	}
	if crit.RoleCategory == domain.RoleEntryLevel || crit.RoleCategory == domain.RoleBoth {
		queries = append(queries, ProviderQuery{
			Query:      assemble(keywords, "entry level new grad", location, remoteOnly),
			Flag:       entryLevelLabel,
			RemoteOnly: remoteOnly,
		})
	}

	return queries, Params{
		NumPages:   cfg.Provider.NumPages,
		DatePosted: cfg.Provider.DatePosted,
	}
}

func internTerms(season domain.Season) string {
	if term, ok := seasonTerms[season]; ok {
		return term + " internship"
	}
	return "internship"
}

func assemble(keywords, roleTerms, location string, remoteOnly bool) string {
	parts := make([]string, 0, 4)
	if keywords != "" {
		parts = append(parts, keywords)
	}
	parts = append(parts, roleTerms)
	if location != "" {
		parts = append(parts, location)
	}
	if remoteOnly {
		parts = append(parts, "remote")
	}
	return strings.Join(parts, " ")
}

// cleanKeywords collapses whitespace and discards input the provider would
// choke on. Empty output is fine; Build falls back to role terms alone.
func cleanKeywords(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxKeywordLen {
		return ""
	}
	if strings.ContainsAny(s, `<>"'`) {
		return ""
	}
	return s
}
