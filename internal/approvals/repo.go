package approvals

import "context"

// Repo defines persistence operations for jobs and their recommendations.
type Repo interface {
	List(ctx context.Context) ([]Job, error)
	GetByID(ctx context.Context, jobID string) (Job, error)
	// SetApproval records status on one recommendation and returns the status
	// it replaced.
	SetApproval(ctx context.Context, jobID, recID string, status ApprovalStatus) (ApprovalStatus, error)
}
