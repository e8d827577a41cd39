package match

import "jobmatch/internal/skills"

// Evaluate counts the required skills the jobseeker covers and turns the
// count into a score. Coverage is measured against the job's requirements
// only: extra unrelated skills neither penalize nor reward beyond 100.
func Evaluate(seeker, required skills.Set) (matched int, score float64) {
	matched = seeker.Overlap(required)
	return matched, scoreFor(matched, required.Len())
}

// Score is the pure pair scorer: 100 * |S ∩ R| / |R|, always within
// [0, 100]. A job with no required skills is trivially satisfied, so every
// jobseeker scores a full 100 against it.
func Score(seeker, required skills.Set) float64 {
	_, score := Evaluate(seeker, required)
	return score
}

func scoreFor(matched, required int) float64 {
	if required == 0 {
		return 100.0
	}
	return 100.0 * float64(matched) / float64(required)
}
