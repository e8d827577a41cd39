// Package report renders a ranked recommendation list as console, CSV, or
// JSON output.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"jobmatch/internal/match"
)

const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

var columns = []string{
	"jobseeker_id",
	"jobseeker_name",
	"job_id",
	"job_title",
	"matching_skill_count",
	"matching_skill_percent",
}

// FormatScore renders a score with two decimals. Scores stay at full
// precision inside the engine; rounding happens at the output edge only.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

// Write renders the recommendations in the requested format. An empty format
// selects the console table.
func Write(w io.Writer, format string, recs []match.Recommendation) error {
	switch format {
	case FormatTable, "":
		return WriteTable(w, recs)
	case FormatCSV:
		return WriteCSV(w, recs)
	case FormatJSON:
		return WriteJSON(w, recs)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteTable writes the report as a comma-separated console table: a header
// line followed by one line per recommendation, in ranked order.
func WriteTable(w io.Writer, recs []match.Recommendation) error {
	if _, err := fmt.Fprintln(w, strings.Join(columns, ", ")); err != nil {
		return err
	}

	for _, rec := range recs {
		_, err := fmt.Fprintf(w, "%s, %s, %s, %s, %d, %s\n",
			rec.JobseekerID, rec.JobseekerName, rec.JobID, rec.JobTitle,
			rec.MatchedSkills, FormatScore(rec.Score))
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteCSV writes the report with the same columns as the console table,
// properly quoted for spreadsheet import.
func WriteCSV(w io.Writer, recs []match.Recommendation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return err
	}

	for _, rec := range recs {
		record := []string{
			rec.JobseekerID,
			rec.JobseekerName,
			rec.JobID,
			rec.JobTitle,
			strconv.Itoa(rec.MatchedSkills),
			FormatScore(rec.Score),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteJSON writes the report as an indented JSON array.
func WriteJSON(w io.Writer, recs []match.Recommendation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(recs)
}

// DumpToTmpFile writes the JSON report to a fresh temporary file and returns
// its name.
func DumpToTmpFile(recs []match.Recommendation) (string, error) {
	file, err := os.CreateTemp("", "recommendations_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := WriteJSON(file, recs); err != nil {
		return "", err
	}

	return file.Name(), nil
}

// SummaryByJobseeker groups the recommendations per jobseeker.
func SummaryByJobseeker(recs []match.Recommendation) map[string][]map[string]string {
	summary := make(map[string][]map[string]string)
	for _, rec := range recs {
		key := fmt.Sprintf("%s (%s)", rec.JobseekerName, rec.JobseekerID)
		summary[key] = append(summary[key], map[string]string{
			"job_id":         rec.JobID,
			"job_title":      rec.JobTitle,
			"matched_skills": strconv.Itoa(rec.MatchedSkills),
			"match_score":    FormatScore(rec.Score),
		})
	}

	return summary
}
