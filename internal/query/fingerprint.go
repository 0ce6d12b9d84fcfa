package query

import (
	"strings"

	"jobfinder-engine/internal/domain"
)

// Fingerprint derives the session-cache key for a search: the normalized
// keyword/location text plus the three enum selections. Identical criteria
// always map to the same key within and across searches.
func Fingerprint(crit domain.SearchCriteria) string {
	crit = crit.Normalize()
	norm := func(s string) string {
		return strings.ToLower(strings.Join(strings.Fields(s), " "))
	}
	return strings.Join([]string{
		norm(crit.Keywords),
		norm(crit.Location),
		string(crit.RoleCategory),
		string(crit.Season),
		string(crit.LocationMode),
	}, "|")
}
