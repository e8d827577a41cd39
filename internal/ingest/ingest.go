// Package ingest loads the jobseeker and job collections from CSV exports.
//
// Both files are header-addressed: columns are looked up by name, unknown
// columns are ignored, and a trailing skills column absorbs surplus fields
// left by unquoted comma-separated cells. Skill cells are normalized on the
// way in, so the rest of the program only ever sees canonical skill sets.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"jobmatch/internal/logger"
	"jobmatch/internal/match"
	"jobmatch/internal/skills"
)

const (
	columnID             = "id"
	columnName           = "name"
	columnSkills         = "skills"
	columnTitle          = "title"
	columnRequiredSkills = "required_skills"

	maxSkillsLogged = 64
)

type jobseekerRow struct {
	ID     string `csv:"id"`
	Name   string `csv:"name"`
	Skills string `csv:"skills"`
}

type jobRow struct {
	ID     string `csv:"id"`
	Title  string `csv:"title"`
	Skills string `csv:"required_skills"`
}

// Reader parses jobseeker and job CSV files.
type Reader struct {
	logger *zap.Logger
}

func NewReader(lg *zap.Logger) *Reader {
	return &Reader{logger: logger.WithFields(lg)}
}

// Jobseekers loads the jobseeker collection from the CSV file at path.
func (r *Reader) Jobseekers(path string) ([]match.Jobseeker, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return r.parseJobseekers(file, path)
}

// Jobs loads the job collection from the CSV file at path.
func (r *Reader) Jobs(path string) ([]match.Job, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return r.parseJobs(file, path)
}

func (r *Reader) parseJobseekers(src io.Reader, name string) ([]match.Jobseeker, error) {
	lg := logger.WithCollectionFields(r.logger, name, "jobseekers")

	rows, err := readRows(src, []string{columnID, columnName, columnSkills})
	if err != nil {
		return nil, fmt.Errorf("jobseekers file: %w", err)
	}

	seekers := make([]match.Jobseeker, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for i, row := range rows {
		var rec jobseekerRow
		if err := decodeRow(row, &rec); err != nil {
			return nil, fmt.Errorf("jobseekers row %d: %w", i+2, err)
		}

		id := strings.TrimSpace(rec.ID)
		if id == "" {
			return nil, fmt.Errorf("jobseekers row %d: blank id", i+2)
		}

		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("jobseekers row %d: duplicate id %q", i+2, id)
		}
		seen[id] = struct{}{}

		seeker := match.Jobseeker{
			ID:     id,
			Name:   strings.TrimSpace(rec.Name),
			Skills: skills.Split(rec.Skills),
		}

		lg.Debug("parsed jobseeker",
			zap.String("id", seeker.ID),
			zap.String("skills", logger.JoinForLog(seeker.Skills.List(), maxSkillsLogged)),
		)

		seekers = append(seekers, seeker)
	}

	lg.Debug("collection parsed", zap.Int("count", len(seekers)))

	return seekers, nil
}

func (r *Reader) parseJobs(src io.Reader, name string) ([]match.Job, error) {
	lg := logger.WithCollectionFields(r.logger, name, "jobs")

	rows, err := readRows(src, []string{columnID, columnTitle, columnRequiredSkills})
	if err != nil {
		return nil, fmt.Errorf("jobs file: %w", err)
	}

	jobs := make([]match.Job, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for i, row := range rows {
		var rec jobRow
		if err := decodeRow(row, &rec); err != nil {
			return nil, fmt.Errorf("jobs row %d: %w", i+2, err)
		}

		id := strings.TrimSpace(rec.ID)
		if id == "" {
			return nil, fmt.Errorf("jobs row %d: blank id", i+2)
		}

		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("jobs row %d: duplicate id %q", i+2, id)
		}
		seen[id] = struct{}{}

		job := match.Job{
			ID:       id,
			Title:    strings.TrimSpace(rec.Title),
			Required: skills.Split(rec.Skills),
		}

		lg.Debug("parsed job",
			zap.String("id", job.ID),
			zap.String("required_skills", logger.JoinForLog(job.Required.List(), maxSkillsLogged)),
		)

		jobs = append(jobs, job)
	}

	lg.Debug("collection parsed", zap.Int("count", len(jobs)))

	return jobs, nil
}

// readRows reads the header and data rows, returning one column→value map per
// data row. Column names are matched case-insensitively and columns outside
// the required set are dropped. When the last required column sits at the end
// of the header, rows with surplus fields fold them back into that column:
// exports routinely leave comma-separated skill cells unquoted.
func readRows(src io.Reader, required []string) ([]map[string]string, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	positions := make(map[string]int, len(header))
	for i, cell := range header {
		if i == 0 {
			cell = strings.TrimPrefix(cell, "\uFEFF")
		}
		positions[strings.ToLower(strings.TrimSpace(cell))] = i
	}

	for _, column := range required {
		if _, ok := positions[column]; !ok {
			return nil, fmt.Errorf("missing required column %q", column)
		}
	}

	foldable := positions[required[len(required)-1]] == len(header)-1

	var rows []map[string]string

	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if len(record) < len(header) || (len(record) > len(header) && !foldable) {
			return nil, fmt.Errorf("line %d: got %d fields, want %d", line, len(record), len(header))
		}

		if len(record) > len(header) {
			record[len(header)-1] = strings.Join(record[len(header)-1:], ",")
		}

		row := make(map[string]string, len(required))
		for _, column := range required {
			row[column] = record[positions[column]]
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func decodeRow(row map[string]string, result any) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   result,
		TagName:  "csv",
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(row)
}
