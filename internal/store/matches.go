package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobmatch/internal/match"
)

// SaveMatches replaces the stored recommendation report. Each row gets a
// fresh uuid and the whole batch shares one created_at stamp.
func SaveMatches(ctx context.Context, db *sql.DB, recs []match.Recommendation) error {
	createdAt := time.Now().UTC().Format(time.RFC3339)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM match_results;`); err != nil {
		return err
	}

	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO match_results (id, jobseeker_id, job_id, matched, score, created_at)
VALUES (?, ?, ?, ?, ?, ?);`,
			uuid.NewString(), rec.JobseekerID, rec.JobID, rec.MatchedSkills, rec.Score, createdAt,
		); err != nil {
			return fmt.Errorf("insert match %s/%s: %w", rec.JobseekerID, rec.JobID, err)
		}
	}

	return tx.Commit()
}

// CountMatches returns the number of stored recommendation rows.
func CountMatches(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_results;`).Scan(&count)

	return count, err
}
