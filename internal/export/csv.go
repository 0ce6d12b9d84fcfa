package export

import (
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"

	"jobfinder-engine/internal/domain"
	"jobfinder-engine/internal/store"
)

// Column order mirrors the JobListing field order; downstream spreadsheets
// depend on it.
var header = []string{
	"Title", "Company", "Location", "Description", "Apply Link",
	"Remote", "Tags", "Query Flag",
}

func WriteResultSet(w io.Writer, rs domain.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, j := range rs {
		if err := cw.Write(record(j)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteSavedJobs(w io.Writer, saved []store.SavedJob) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append(header, "Saved At")); err != nil {
		return err
	}
	for _, s := range saved {
		rec := append(record(s.Listing), s.SavedAt.Format("2006-01-02 15:04:05"))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(j domain.JobListing) []string {
	return []string{
		j.Title,
		j.Company,
		j.Location,
		j.Description,
		j.ApplyLink,
		strconv.FormatBool(j.IsRemote),
		strings.Join(j.Tags, ", "),
		j.QueryFlag,
	}
}

var unsafeFilename = regexp.MustCompile(`[<>:"/\\|?*]+`)

// Filename sanitizes a download name for the Content-Disposition header.
func Filename(base string) string {
	base = unsafeFilename.ReplaceAllString(base, "_")
	base = strings.Trim(strings.ReplaceAll(base, "__", "_"), "_")
	if base == "" {
		base = "jobs"
	}
	return base + ".csv"
}
