package store

import (
	"context"
	"database/sql"
	"fmt"

	"jobmatch/internal/match"
	"jobmatch/internal/skills"
)

// SaveSnapshot replaces the stored collections with the provided batch in one
// transaction. A failed run leaves the previous snapshot untouched.
func SaveSnapshot(ctx context.Context, db *sql.DB, seekers []match.Jobseeker, jobs []match.Job) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM jobseekers;`); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs;`); err != nil {
		return err
	}

	for _, seeker := range seekers {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO jobseekers (id, name, skills)
VALUES (?, ?, ?);`,
			seeker.ID, seeker.Name, seeker.Skills.String(),
		); err != nil {
			return fmt.Errorf("insert jobseeker %s: %w", seeker.ID, err)
		}
	}

	for _, job := range jobs {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO jobs (id, title, required_skills)
VALUES (?, ?, ?);`,
			job.ID, job.Title, job.Required.String(),
		); err != nil {
			return fmt.Errorf("insert job %s: %w", job.ID, err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads both collections back, ordered by id. Skill cells are
// stored in canonical comma-separated form and rebuilt into sets on the way
// out.
func LoadSnapshot(ctx context.Context, db *sql.DB) ([]match.Jobseeker, []match.Job, error) {
	seekers, err := loadJobseekers(ctx, db)
	if err != nil {
		return nil, nil, fmt.Errorf("load jobseekers: %w", err)
	}

	jobs, err := loadJobs(ctx, db)
	if err != nil {
		return nil, nil, fmt.Errorf("load jobs: %w", err)
	}

	return seekers, jobs, nil
}

func loadJobseekers(ctx context.Context, db *sql.DB) ([]match.Jobseeker, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, name, skills FROM jobseekers ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seekers []match.Jobseeker
	for rows.Next() {
		var id, name, skillCell string

		if err := rows.Scan(&id, &name, &skillCell); err != nil {
			return nil, err
		}

		seekers = append(seekers, match.Jobseeker{
			ID:     id,
			Name:   name,
			Skills: skills.Split(skillCell),
		})
	}

	return seekers, rows.Err()
}

func loadJobs(ctx context.Context, db *sql.DB) ([]match.Job, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, title, required_skills FROM jobs ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []match.Job
	for rows.Next() {
		var id, title, skillCell string

		if err := rows.Scan(&id, &title, &skillCell); err != nil {
			return nil, err
		}

		jobs = append(jobs, match.Job{
			ID:       id,
			Title:    title,
			Required: skills.Split(skillCell),
		})
	}

	return jobs, rows.Err()
}
