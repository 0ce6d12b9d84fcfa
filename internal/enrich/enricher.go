package enrich

import (
	"strings"

	"jobfinder-engine/internal/config"
	"jobfinder-engine/internal/domain"
	"jobfinder-engine/internal/provider"
)

// Listings turns one query's raw provider records into enriched listings.
// Records lacking a title, company, or apply link are dropped silently; no
// field is ever fabricated. flag is the season/role label of the producing
// query.
func Listings(cfg config.Config, raw []provider.Listing, flag string) domain.ResultSet {
	out := make(domain.ResultSet, 0, len(raw))
	for _, r := range raw {
		title := CleanText(r.Title)
		company := CleanText(r.Employer)
		applyLink := strings.TrimSpace(r.ApplyLink)
		if title == "" || company == "" || applyLink == "" {
			continue
		}

		loc := formatLocation(r)
		desc := FormatDescription(r.Description)

		j := domain.JobListing{
			Title:       title,
			Company:     company,
			Location:    loc,
			Description: desc,
			ApplyLink:   applyLink,
			EmployType:  CleanText(r.EmploymentType),
			PostedAt:    strings.TrimSpace(r.PostedAt),
			QueryFlag:   flag,
		}
		j.IsRemote = r.IsRemote || MatchesRemote(cfg, loc, title, desc)
		j.Tags = Tags(cfg, title, desc)
		out = append(out, j)
	}
	return out
}

// MatchesRemote reports whether any remote indicator from the configured
// vocabulary appears in the location, title, or description.
func MatchesRemote(cfg config.Config, location, title, desc string) bool {
	blob := strings.ToLower(location + " " + title + " " + desc)
	for _, ind := range cfg.Filters.RemoteIndicators {
		ind = strings.ToLower(strings.TrimSpace(ind))
		if ind == "" {
			continue
		}
		if strings.Contains(blob, ind) {
			return true
		}
	}
	return false
}

// FilterByLocationMode applies the location-mode contract: RemoteOnly drops
// non-remote listings, OnSiteOnly drops remote ones, IncludeRemote keeps
// everything.
func FilterByLocationMode(mode domain.LocationMode, in domain.ResultSet) domain.ResultSet {
	if mode == domain.IncludeRemote {
		return in
	}
	out := make(domain.ResultSet, 0, len(in))
	for _, j := range in {
		if (mode == domain.RemoteOnly) == j.IsRemote {
			out = append(out, j)
		}
	}
	return out
}

// Tags applies the configured keyword rules to title+description. One tag
// per matched rule, capped at max_tags, fallback tag when nothing matches.
func Tags(cfg config.Config, title, desc string) []string {
	text := strings.ToLower(title + " " + desc)

	var tags []string
	for _, r := range cfg.Tagging.Rules {
		if len(tags) >= cfg.Tagging.MaxTags {
			break
		}
		for _, needle := range r.Any {
			n := strings.ToLower(strings.TrimSpace(needle))
			if n == "" {
				continue
			}
			if strings.Contains(text, n) {
				tags = append(tags, r.Tag)
				break
			}
		}
	}

	if len(tags) == 0 && cfg.Tagging.FallbackTag != "" {
		tags = []string{cfg.Tagging.FallbackTag}
	}
	return tags
}

// Dedupe drops repeat title+company pairs, keeping the first occurrence.
// The provider returns the same posting under multiple queries routinely.
func Dedupe(in domain.ResultSet) domain.ResultSet {
	seen := map[string]bool{}
	out := make(domain.ResultSet, 0, len(in))
	for _, j := range in {
		key := strings.ToLower(j.Title) + "|" + strings.ToLower(j.Company)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, j)
	}
	return out
}

func formatLocation(r provider.Listing) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{r.City, r.State, r.Country} {
		if p = CleanText(p); p != "" {
			parts = append(parts, p)
		}
	}
	if r.IsRemote {
		parts = append(parts, "Remote")
	}
	if len(parts) == 0 {
		return "Not specified"
	}
	return NormalizeLocation(strings.Join(parts, ", "))
}
