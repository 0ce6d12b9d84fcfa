package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"jobfinder-engine/internal/domain"
)

// SavedJob is a listing the user pinned, persisted across sessions. The
// title+company+location triple is the dedup key; saving the same listing
// twice is a no-op.
type SavedJob struct {
	ID      int64             `json:"id"`
	SavedAt time.Time         `json:"savedAt"`
	Listing domain.JobListing `json:"listing"`
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS saved_jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  apply_link TEXT NOT NULL,
  employment_type TEXT NOT NULL DEFAULT '',
  posted_at TEXT NOT NULL DEFAULT '',
  is_remote INTEGER NOT NULL DEFAULT 0,
  tags TEXT NOT NULL DEFAULT '[]',
  query_flag TEXT NOT NULL DEFAULT '',
  saved_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_saved_jobs_identity
ON saved_jobs(lower(title), lower(company), lower(location));
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_saved_jobs_saved_at
ON saved_jobs(saved_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// SaveJob inserts the listing unless an identical title/company/location
// row exists. Returns the stored row and whether it was newly inserted.
func SaveJob(ctx context.Context, db *sql.DB, j domain.JobListing) (SavedJob, bool, error) {
	tagsB, _ := json.Marshal(j.Tags)
	now := time.Now().UTC()

	res, err := db.ExecContext(ctx, `
INSERT INTO saved_jobs(title, company, location, description, apply_link,
  employment_type, posted_at, is_remote, tags, query_flag, saved_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT DO NOTHING;`,
		j.Title, j.Company, j.Location, j.Description, j.ApplyLink,
		j.EmployType, j.PostedAt, boolToInt(j.IsRemote), string(tagsB), j.QueryFlag,
		now.Format(time.RFC3339))
	if err != nil {
		return SavedJob{}, false, err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return SavedJob{}, false, nil
	}
	id, _ := res.LastInsertId()
	return SavedJob{ID: id, SavedAt: now, Listing: j}, true, nil
}

func ListSavedJobs(ctx context.Context, db *sql.DB) ([]SavedJob, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, title, company, location, description, apply_link,
  employment_type, posted_at, is_remote, tags, query_flag, saved_at
FROM saved_jobs
ORDER BY saved_at DESC, id DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SavedJob
	for rows.Next() {
		var s SavedJob
		var isRemote int
		var tagsJSON, savedAtStr string
		if err := rows.Scan(&s.ID, &s.Listing.Title, &s.Listing.Company, &s.Listing.Location,
			&s.Listing.Description, &s.Listing.ApplyLink, &s.Listing.EmployType,
			&s.Listing.PostedAt, &isRemote, &tagsJSON, &s.Listing.QueryFlag, &savedAtStr); err != nil {
			return nil, err
		}
		s.Listing.IsRemote = isRemote != 0
		_ = json.Unmarshal([]byte(tagsJSON), &s.Listing.Tags)
		s.SavedAt, _ = time.Parse(time.RFC3339, savedAtStr)
		out = append(out, s)
	}
	return out, rows.Err()
}

func DeleteSavedJob(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE id = ?;`, id)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
