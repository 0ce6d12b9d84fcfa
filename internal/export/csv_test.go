package export

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"
	"time"

	"jobfinder-engine/internal/domain"
	"jobfinder-engine/internal/store"
)

func TestWriteResultSetColumnOrder(t *testing.T) {
	t.Parallel()

	rs := domain.ResultSet{{
		Title:       "ML Intern",
		Company:     "Acme",
		Location:    "Austin, TX",
		Description: "Build models",
		ApplyLink:   "https://a.example",
		IsRemote:    true,
		Tags:        []string{"Machine Learning", "Data Science"},
		QueryFlag:   "Fall 2025 Internship",
	}}

	var buf bytes.Buffer
	if err := WriteResultSet(&buf, rs); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}

	wantHeader := []string{"Title", "Company", "Location", "Description", "Apply Link", "Remote", "Tags", "Query Flag"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v", rows[0])
	}
	wantRow := []string{"ML Intern", "Acme", "Austin, TX", "Build models", "https://a.example",
		"true", "Machine Learning, Data Science", "Fall 2025 Internship"}
	if !reflect.DeepEqual(rows[1], wantRow) {
		t.Errorf("row = %v", rows[1])
	}
}

func TestWriteResultSetEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteResultSet(&buf, nil); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("empty set should still write the header row, got %d rows", len(rows))
	}
}

func TestWriteSavedJobsAddsSavedAt(t *testing.T) {
	t.Parallel()

	saved := []store.SavedJob{{
		ID:      1,
		SavedAt: time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC),
		Listing: domain.JobListing{Title: "T", Company: "C", ApplyLink: "u"},
	}}

	var buf bytes.Buffer
	if err := WriteSavedJobs(&buf, saved); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if got := rows[0][len(rows[0])-1]; got != "Saved At" {
		t.Errorf("last header col = %q", got)
	}
	if got := rows[1][len(rows[1])-1]; got != "2026-08-01 12:30:00" {
		t.Errorf("saved_at col = %q", got)
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "jobs", "jobs.csv"},
		{"strips unsafe chars", `ml/intern:2026`, "ml_intern_2026.csv"},
		{"empty falls back", `///`, "jobs.csv"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Filename(tt.in); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
