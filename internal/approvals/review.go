package approvals

import "fmt"

// RequiresApproval reports whether a recommendation in category c needs a
// customer decision. Only all_systems_go findings are informational.
func RequiresApproval(c Category) bool {
	return c != CategoryAllSystemsGo
}

// DeriveReviewState classifies a job from its recommendations. The result
// depends only on the multiset of (category, status) pairs, never on order.
func DeriveReviewState(recs []Recommendation) ReviewState {
	needsApproval := 0
	decided := 0
	for _, r := range recs {
		if !RequiresApproval(r.Category) {
			continue
		}
		needsApproval++
		if r.ApprovalStatus != StatusPending {
			decided++
		}
	}
	switch {
	case needsApproval == 0:
		return ReviewReviewed
	case decided == 0:
		return ReviewNotReviewed
	case decided == needsApproval:
		return ReviewReviewed
	default:
		return ReviewPartiallyReviewed
	}
}

// PendingCount counts recommendations that require approval and are still pending.
func PendingCount(recs []Recommendation) int {
	n := 0
	for _, r := range recs {
		if RequiresApproval(r.Category) && r.ApprovalStatus == StatusPending {
			n++
		}
	}
	return n
}

// WithReviewState attaches the derived review fields to job.
func WithReviewState(job Job) JobWithReviewState {
	return JobWithReviewState{
		Job:          job,
		ReviewState:  DeriveReviewState(job.Recommendations),
		PendingCount: PendingCount(job.Recommendations),
	}
}

// BuildJobsWithReviewState derives review fields for every job, preserving order.
func BuildJobsWithReviewState(jobs []Job) []JobWithReviewState {
	out := make([]JobWithReviewState, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, WithReviewState(job))
	}
	return out
}

// GetJob looks up a job by id and derives its review fields.
func GetJob(jobs []Job, jobID string) (JobWithReviewState, bool) {
	for _, job := range jobs {
		if job.ID == jobID {
			return WithReviewState(job), true
		}
	}
	return JobWithReviewState{}, false
}

// FindRecommendation returns the recommendation with recID inside job.
func FindRecommendation(job Job, recID string) (Recommendation, bool) {
	for _, r := range job.Recommendations {
		if r.ID == recID {
			return r, true
		}
	}
	return Recommendation{}, false
}

// SetServiceApproval returns a copy of jobs where the recommendation recID of
// job jobID carries status. The input slice and its recommendation slices are
// never written to; untouched jobs are shared with the result. An unknown job
// id returns jobs as is, and an unknown recommendation id yields an equal copy.
func SetServiceApproval(jobs []Job, jobID, recID string, status ApprovalStatus) []Job {
	idx := -1
	for i := range jobs {
		if jobs[i].ID == jobID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return jobs
	}

	out := make([]Job, len(jobs))
	copy(out, jobs)

	job := jobs[idx]
	recs := make([]Recommendation, len(job.Recommendations))
	for i, r := range job.Recommendations {
		if r.ID == recID {
			r.ApprovalStatus = status
		}
		recs[i] = r
	}
	job.Recommendations = recs
	out[idx] = job
	return out
}

// ValidateJobs checks the structural invariants the engine relies on: unique
// job ids, unique recommendation ids within a job, every recommendation
// pointing back at its job, and known categories and statuses.
func ValidateJobs(jobs []Job) error {
	seenJobs := make(map[string]struct{}, len(jobs))
	for _, job := range jobs {
		if job.ID == "" {
			return fmt.Errorf("%w: empty job id", ErrInvalidJob)
		}
		if _, dup := seenJobs[job.ID]; dup {
			return fmt.Errorf("%w: duplicate job id %q", ErrInvalidJob, job.ID)
		}
		seenJobs[job.ID] = struct{}{}

		seenRecs := make(map[string]struct{}, len(job.Recommendations))
		for _, r := range job.Recommendations {
			if r.ID == "" {
				return fmt.Errorf("%w: job %q has a recommendation without id", ErrInvalidJob, job.ID)
			}
			if _, dup := seenRecs[r.ID]; dup {
				return fmt.Errorf("%w: job %q has duplicate recommendation id %q", ErrInvalidJob, job.ID, r.ID)
			}
			seenRecs[r.ID] = struct{}{}
			if r.JobID != job.ID {
				return fmt.Errorf("%w: recommendation %q references job %q but belongs to %q", ErrInvalidJob, r.ID, r.JobID, job.ID)
			}
			if !r.Category.Valid() {
				return fmt.Errorf("%w: recommendation %q has unknown category %q", ErrInvalidJob, r.ID, r.Category)
			}
			if !r.ApprovalStatus.Valid() {
				return fmt.Errorf("%w: recommendation %q has unknown status %q", ErrInvalidJob, r.ID, r.ApprovalStatus)
			}
		}
	}
	return nil
}
