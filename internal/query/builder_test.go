package query

import (
	"strings"
	"testing"

	"jobfinder-engine/internal/config"
	"jobfinder-engine/internal/domain"
)

func testConfig() config.Config {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	cfg.Provider.NumPages = 2
	cfg.Provider.DatePosted = "week"
	return cfg
}

func TestBuildRoleExpansion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		crit      domain.SearchCriteria
		wantLen   int
		wantFlags []string
	}{
		{
			name:      "internship only",
			crit:      domain.SearchCriteria{Keywords: "machine learning", RoleCategory: domain.RoleInternship, Season: domain.SeasonSummer2026},
			wantLen:   1,
			wantFlags: []string{"Summer 2026 Internship"},
		},
		{
			name:      "entry level only",
			crit:      domain.SearchCriteria{Keywords: "data engineer", RoleCategory: domain.RoleEntryLevel},
			wantLen:   1,
			wantFlags: []string{"Entry-Level / New-Grad Full-Time"},
		},
		{
			name:      "both expands to two queries",
			crit:      domain.SearchCriteria{Keywords: "software engineer", RoleCategory: domain.RoleBoth, Season: domain.SeasonFall2025},
			wantLen:   2,
			wantFlags: []string{"Fall 2025 Internship", "Entry-Level / New-Grad Full-Time"},
		},
		{
			name:      "defaults to both with generic internship label",
			crit:      domain.SearchCriteria{Keywords: "nlp"},
			wantLen:   2,
			wantFlags: []string{"Internship", "Entry-Level / New-Grad Full-Time"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			queries, _ := Build(testConfig(), tt.crit)
			if len(queries) != tt.wantLen {
				t.Fatalf("got %d queries, want %d", len(queries), tt.wantLen)
			}
			for i, q := range queries {
				if q.Flag != tt.wantFlags[i] {
					t.Errorf("query[%d].Flag = %q, want %q", i, q.Flag, tt.wantFlags[i])
				}
			}
		})
	}
}

func TestBuildQueryText(t *testing.T) {
	t.Parallel()

	crit := domain.SearchCriteria{
		Keywords:     "machine learning",
		RoleCategory: domain.RoleInternship,
		Season:       domain.SeasonSummer2026,
	}
	queries, _ := Build(testConfig(), crit)
	if len(queries) != 1 {
		t.Fatalf("got %d queries, want 1", len(queries))
	}
	q := queries[0].Query
	if !strings.Contains(q, "machine learning") {
		t.Errorf("query %q missing keywords", q)
	}
	if !strings.Contains(q, "summer 2026") || !strings.Contains(q, "internship") {
		t.Errorf("query %q missing season terms", q)
	}
}

func TestBuildRemoteOnly(t *testing.T) {
	t.Parallel()

	crit := domain.SearchCriteria{
		Keywords:     "data science",
		RoleCategory: domain.RoleEntryLevel,
		LocationMode: domain.RemoteOnly,
	}
	queries, _ := Build(testConfig(), crit)
	if len(queries) != 1 {
		t.Fatalf("got %d queries, want 1", len(queries))
	}
	if !queries[0].RemoteOnly {
		t.Error("RemoteOnly not set")
	}
	if !strings.HasSuffix(queries[0].Query, " remote") {
		t.Errorf("query %q should end with remote term", queries[0].Query)
	}
}

func TestBuildDeterministic(t *testing.T) {
	t.Parallel()

	crit := domain.SearchCriteria{Keywords: "  backend   engineer ", Location: "Austin,  TX"}
	a, pa := Build(testConfig(), crit)
	b, pb := Build(testConfig(), crit)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("query[%d] differs: %+v vs %+v", i, a[i], b[i])
		}
	}
	if pa != pb {
		t.Errorf("params differ: %+v vs %+v", pa, pb)
	}
}

func TestBuildParams(t *testing.T) {
	t.Parallel()

	_, p := Build(testConfig(), domain.SearchCriteria{Keywords: "x"})
	if p.NumPages != 2 {
		t.Errorf("NumPages = %d, want 2", p.NumPages)
	}
	if p.DatePosted != "week" {
		t.Errorf("DatePosted = %q, want week", p.DatePosted)
	}
}

func TestCleanKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "  machine   learning ", "machine learning"},
		{"rejects angle brackets", `<script>alert(1)</script>`, ""},
		{"rejects quotes", `data "science"`, ""},
		{"rejects over-long input", strings.Repeat("a", 101), ""},
		{"keeps 100 chars", strings.Repeat("a", 100), strings.Repeat("a", 100)},
		{"empty stays empty", "   ", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cleanKeywords(tt.in); got != tt.want {
				t.Errorf("cleanKeywords(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildUnusableKeywordsFallBack(t *testing.T) {
	t.Parallel()

	crit := domain.SearchCriteria{
		Keywords:     `"drop table"`,
		RoleCategory: domain.RoleInternship,
		Season:       domain.SeasonFall2025,
	}
	queries, _ := Build(testConfig(), crit)
	if len(queries) != 1 {
		t.Fatalf("got %d queries, want 1", len(queries))
	}
	if got, want := queries[0].Query, "fall 2025 internship"; got != want {
		t.Errorf("query = %q, want role-only %q", got, want)
	}
}
