// Package match implements the matching and ranking engine: it scores every
// jobseeker against every job by skill coverage and produces one
// deterministically ordered recommendation report per run. The engine is a
// pure function over an in-memory snapshot; it owns no persistent state and
// never mutates its inputs.
package match

import "jobmatch/internal/skills"

// Jobseeker is one ingested jobseeker record. Identifiers are opaque strings
// assigned by the ingestion side and unique within a snapshot.
type Jobseeker struct {
	ID     string
	Name   string
	Skills skills.Set
}

// Job is one ingested job listing with its required skill set.
type Job struct {
	ID       string
	Title    string
	Required skills.Set
}

// Recommendation is one row of the report: a scored (jobseeker, job) pair.
// Score is the percentage of the job's required skills covered by the
// jobseeker, kept at full float64 precision; rendering rounds it to two
// decimals at output time only.
type Recommendation struct {
	JobseekerID   string  `json:"jobseeker_id"`
	JobseekerName string  `json:"jobseeker_name"`
	JobID         string  `json:"job_id"`
	JobTitle      string  `json:"job_title"`
	MatchedSkills int     `json:"matched_skills"`
	Score         float64 `json:"match_score"`
}
