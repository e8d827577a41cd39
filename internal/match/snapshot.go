package match

import "fmt"

// Snapshot is the immutable in-memory view of both entity collections a run
// computes over. The id indexes are built once here; every pair evaluation
// joins through them and reports ErrMissingEntity when a lookup fails.
type Snapshot struct {
	seekerIDs []string
	jobIDs    []string
	seekers   map[string]Jobseeker
	jobs      map[string]Job
}

// NewSnapshot captures the two collections for one run. Identifiers are
// assumed unique within each collection; the ingestion side owns that
// invariant. The input slices are not retained.
func NewSnapshot(seekers []Jobseeker, jobs []Job) *Snapshot {
	s := &Snapshot{
		seekerIDs: make([]string, 0, len(seekers)),
		jobIDs:    make([]string, 0, len(jobs)),
		seekers:   make(map[string]Jobseeker, len(seekers)),
		jobs:      make(map[string]Job, len(jobs)),
	}
	for _, js := range seekers {
		s.seekerIDs = append(s.seekerIDs, js.ID)
		s.seekers[js.ID] = js
	}
	for _, j := range jobs {
		s.jobIDs = append(s.jobIDs, j.ID)
		s.jobs[j.ID] = j
	}
	return s
}

// Jobseekers returns the number of jobseekers in the snapshot.
func (s *Snapshot) Jobseekers() int { return len(s.seekerIDs) }

// Jobs returns the number of jobs in the snapshot.
func (s *Snapshot) Jobs() int { return len(s.jobIDs) }

// Pairs returns the size of the cross-product a run evaluates.
func (s *Snapshot) Pairs() int { return len(s.seekerIDs) * len(s.jobIDs) }

func (s *Snapshot) jobseeker(id string) (Jobseeker, error) {
	js, ok := s.seekers[id]
	if !ok {
		return Jobseeker{}, fmt.Errorf("%w: jobseeker %q", ErrMissingEntity, id)
	}
	return js, nil
}

func (s *Snapshot) job(id string) (Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return Job{}, fmt.Errorf("%w: job %q", ErrMissingEntity, id)
	}
	return j, nil
}
