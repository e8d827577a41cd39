package store

import (
	"database/sql"
)

const schemaVersion = 1

// Migrate brings the schema up to the current version. Guarded by
// PRAGMA user_version, so running it against an already migrated database is
// a no-op.
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

	if v >= schemaVersion {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobseekers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  skills TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  required_skills TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS match_results (
  id TEXT PRIMARY KEY,
  jobseeker_id TEXT NOT NULL,
  job_id TEXT NOT NULL,
  matched INTEGER NOT NULL DEFAULT 0,
  score REAL NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobseekers_skills
ON jobseekers (skills);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_required_skills
ON jobs (required_skills);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_match_results_pair
ON match_results (jobseeker_id, job_id);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
