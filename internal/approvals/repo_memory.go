package approvals

import (
	"context"
	"sync"
)

// MemoryRepo keeps the job collection in memory. Writes replace the whole
// collection with a new snapshot produced by SetServiceApproval, so a slice
// handed out by List is never modified afterwards.
type MemoryRepo struct {
	mu   sync.RWMutex
	jobs []Job
}

// NewMemoryRepo constructs a MemoryRepo holding jobs after validating them.
func NewMemoryRepo(jobs []Job) (*MemoryRepo, error) {
	if err := ValidateJobs(jobs); err != nil {
		return nil, err
	}
	return &MemoryRepo{jobs: cloneJobs(jobs)}, nil
}

// List returns every job in insertion order.
func (r *MemoryRepo) List(ctx context.Context) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneJobs(r.jobs), nil
}

// GetByID returns a job by id.
func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, job := range r.jobs {
		if job.ID == jobID {
			return cloneJob(job), nil
		}
	}
	return Job{}, ErrNotFound
}

// SetApproval records status on the recommendation recID of job jobID.
func (r *MemoryRepo) SetApproval(ctx context.Context, jobID, recID string, status ApprovalStatus) (ApprovalStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var previous ApprovalStatus
	found := false
	for _, job := range r.jobs {
		if job.ID != jobID {
			continue
		}
		rec, ok := FindRecommendation(job, recID)
		if !ok {
			return "", ErrNotFound
		}
		previous = rec.ApprovalStatus
		found = true
		break
	}
	if !found {
		return "", ErrNotFound
	}

	r.jobs = SetServiceApproval(r.jobs, jobID, recID, status)
	return previous, nil
}

func cloneJobs(jobs []Job) []Job {
	out := make([]Job, len(jobs))
	for i, job := range jobs {
		out[i] = cloneJob(job)
	}
	return out
}

func cloneJob(job Job) Job {
	recs := make([]Recommendation, len(job.Recommendations))
	copy(recs, job.Recommendations)
	for i := range recs {
		if recs[i].ConditionTags != nil {
			recs[i].ConditionTags = append([]string(nil), recs[i].ConditionTags...)
		}
	}
	job.Recommendations = recs
	return job
}

var _ Repo = (*MemoryRepo)(nil)
