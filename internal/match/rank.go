package match

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Options configures one ranking run. The zero value is valid and means
// "everything, computed synchronously".
type Options struct {
	// MinScore drops pairs scoring below it from the report. Valid domain is
	// [0, 100]; the default 0 keeps every pair, zero scores included.
	MinScore float64

	// Workers shards the cross-product by jobseeker across a bounded worker
	// pool. Values below 2 select the synchronous single-pass evaluation.
	// The execution strategy never affects the produced ordering: the full
	// three-key sort runs as the final barrier either way.
	Workers int
}

func (o Options) validate() error {
	if math.IsNaN(o.MinScore) || o.MinScore < 0 || o.MinScore > 100 {
		return fmt.Errorf("%w: min_score %v is outside [0, 100]", ErrInvalidConfiguration, o.MinScore)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers %d is negative", ErrInvalidConfiguration, o.Workers)
	}
	return nil
}

// Rank scores the full jobseekers × jobs cross-product of the snapshot and
// returns the report ordered by jobseeker id ascending, score descending and
// job id ascending. The result is byte-for-byte reproducible for identical
// snapshots. Rank is all-or-nothing: it returns either the complete ordered
// report or a single error, with options checked before any pair is scored.
func Rank(snap *Snapshot, opts Options) ([]Recommendation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	shards := make([][]Recommendation, len(snap.seekerIDs))

	if opts.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i, id := range snap.seekerIDs {
			g.Go(func() error {
				shard, err := snap.rankJobseeker(id, opts.MinScore)
				if err != nil {
					return err
				}
				shards[i] = shard
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, id := range snap.seekerIDs {
			shard, err := snap.rankJobseeker(id, opts.MinScore)
			if err != nil {
				return nil, err
			}
			shards[i] = shard
		}
	}

	out := make([]Recommendation, 0, snap.Pairs())
	for _, shard := range shards {
		out = append(out, shard...)
	}

	sortRecommendations(out)
	return out, nil
}

// rankJobseeker evaluates one jobseeker against every job. Each shard writes
// only its own result slice, so parallel shards share nothing but the
// read-only snapshot.
func (s *Snapshot) rankJobseeker(seekerID string, minScore float64) ([]Recommendation, error) {
	js, err := s.jobseeker(seekerID)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		job, err := s.job(jobID)
		if err != nil {
			return nil, err
		}

		matched, score := Evaluate(js.Skills, job.Required)
		if score < minScore {
			continue
		}

		recs = append(recs, Recommendation{
			JobseekerID:   js.ID,
			JobseekerName: js.Name,
			JobID:         job.ID,
			JobTitle:      job.Title,
			MatchedSkills: matched,
			Score:         score,
		})
	}
	return recs, nil
}

// sortRecommendations applies the report's total order. Scores compare at
// full float64 precision; rounding happens in the report writers only. No two
// distinct rows can compare equal because job ids are unique per jobseeker.
func sortRecommendations(recs []Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.JobseekerID != b.JobseekerID {
			return a.JobseekerID < b.JobseekerID
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.JobID < b.JobID
	})
}
