package report

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"jobmatch/internal/match"
)

func sampleRecs() []match.Recommendation {
	return []match.Recommendation{
		{JobseekerID: "J1", JobseekerName: "Alice Seeker", JobID: "K2", JobTitle: "Python Developer", MatchedSkills: 1, Score: 100},
		{JobseekerID: "J1", JobseekerName: "Alice Seeker", JobID: "K1", JobTitle: "Backend Developer", MatchedSkills: 2, Score: 200.0 / 3.0},
	}
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	if err := WriteTable(&buf, sampleRecs()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := strings.Join([]string{
		"jobseeker_id, jobseeker_name, job_id, job_title, matching_skill_count, matching_skill_percent",
		"J1, Alice Seeker, K2, Python Developer, 1, 100.00",
		"J1, Alice Seeker, K1, Backend Developer, 2, 66.67",
		"",
	}, "\n")

	if buf.String() != expect {
		t.Fatalf("expected %q, got %q", expect, buf.String())
	}
}

func TestWriteTableEmpty(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	if err := WriteTable(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Header only.
	expect := "jobseeker_id, jobseeker_name, job_id, job_title, matching_skill_count, matching_skill_percent\n"
	if buf.String() != expect {
		t.Fatalf("expected %q, got %q", expect, buf.String())
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	if err := WriteCSV(&buf, sampleRecs()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := strings.Join([]string{
		"jobseeker_id,jobseeker_name,job_id,job_title,matching_skill_count,matching_skill_percent",
		"J1,Alice Seeker,K2,Python Developer,1,100.00",
		"J1,Alice Seeker,K1,Backend Developer,2,66.67",
		"",
	}, "\n")

	if buf.String() != expect {
		t.Fatalf("expected %q, got %q", expect, buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	if err := WriteJSON(&buf, sampleRecs()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []match.Recommendation
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	if len(decoded) != 2 || decoded[0].JobID != "K2" || decoded[1].MatchedSkills != 2 {
		t.Fatalf("unexpected decoded report: %+v", decoded)
	}

	if !strings.Contains(buf.String(), `"jobseeker_id": "J1"`) {
		t.Fatalf("expected snake_case keys, got %q", buf.String())
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	err := Write(&buf, "xml", sampleRecs())
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}

	if !strings.Contains(err.Error(), `unknown report format "xml"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWriteDeterministic(t *testing.T) {
	t.Parallel()

	for _, format := range []string{FormatTable, FormatCSV, FormatJSON} {
		var first, second strings.Builder

		if err := Write(&first, format, sampleRecs()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := Write(&second, format, sampleRecs()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if first.String() != second.String() {
			t.Fatalf("format %s is not deterministic", format)
		}
	}
}

func TestDumpToTmpFile(t *testing.T) {
	t.Parallel()

	filename, err := DumpToTmpFile(sampleRecs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var decoded []match.Recommendation
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding dump: %v", err)
	}

	if len(decoded) != 2 || decoded[0].JobseekerID != "J1" {
		t.Fatalf("unexpected dump contents: %+v", decoded)
	}
}

func TestSummaryByJobseeker(t *testing.T) {
	t.Parallel()

	recs := append(sampleRecs(), match.Recommendation{
		JobseekerID: "J2", JobseekerName: "Bob Applicant", JobID: "K1", JobTitle: "Backend Developer", MatchedSkills: 0, Score: 0,
	})

	summary := SummaryByJobseeker(recs)

	if len(summary) != 2 {
		t.Fatalf("expected 2 jobseekers, got %d", len(summary))
	}

	alice, ok := summary["Alice Seeker (J1)"]
	if !ok {
		t.Fatalf("missing alice entry: %v", summary)
	}
	if len(alice) != 2 {
		t.Fatalf("expected 2 recommendations for alice, got %d", len(alice))
	}
	if alice[1]["job_id"] != "K1" || alice[1]["match_score"] != "66.67" {
		t.Fatalf("unexpected alice entry: %+v", alice[1])
	}

	bob := summary["Bob Applicant (J2)"]
	if len(bob) != 1 || bob[0]["matched_skills"] != "0" || bob[0]["match_score"] != "0.00" {
		t.Fatalf("unexpected bob entry: %+v", bob)
	}
}
