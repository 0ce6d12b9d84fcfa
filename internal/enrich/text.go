package enrich

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const maxDescriptionLen = 300

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// NormalizeLocation collapses whitespace and drops duplicate comma parts
// ("Remote, Remote, US" style provider output).
func NormalizeLocation(loc string) string {
	loc = CleanText(loc)
	if loc == "" {
		return ""
	}

	parts := strings.Split(loc, ",")
	seen := map[string]bool{}
	var out []string
	for _, p := range parts {
		p = CleanText(p)
		if p == "" {
			continue
		}
		k := strings.ToLower(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}

// FormatDescription strips the provider's HTML markup, collapses
// whitespace, and truncates for card display.
func FormatDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return "No description available"
	}

	if strings.Contains(desc, "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(desc)); err == nil {
			desc = doc.Text()
		}
	}
	desc = CleanText(desc)

	if len(desc) > maxDescriptionLen {
		cut := maxDescriptionLen
		// back up to a rune boundary so the cut never splits a character
		for cut > 0 && !utf8.RuneStart(desc[cut]) {
			cut--
		}
		desc = desc[:cut] + "..."
	}
	return desc
}
