package approvals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleet-backend/internal/shared/metrics"
	"fleet-backend/internal/shared/telemetry"
)

// VehicleSummary is the slice of a roster vehicle shown next to a job.
type VehicleSummary struct {
	ID           string
	Name         string
	VIN          string
	Year         string
	Make         string
	Model        string
	LicensePlate string
}

// VehicleLookup resolves roster vehicles for display. It is never consulted
// when deriving review state.
type VehicleLookup interface {
	FindVehicleByID(ctx context.Context, id string) (VehicleSummary, bool)
}

// Filter selects which jobs List returns.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterNeedsReview Filter = "needs_review"
)

// ParseFilter normalizes a filter query value. Empty means needs_review,
// matching the approvals list default.
func ParseFilter(raw string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(FilterNeedsReview):
		return FilterNeedsReview, nil
	case string(FilterAll):
		return FilterAll, nil
	default:
		return "", fmt.Errorf("%w: unknown filter %q", ErrInvalidInput, raw)
	}
}

// ParseStatus validates a requested approval status.
func ParseStatus(raw string) (ApprovalStatus, error) {
	status := ApprovalStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

// JobView is a job with derived review fields and its vehicle, if known.
type JobView struct {
	JobWithReviewState
	Vehicle *VehicleSummary
}

// VehicleDisplay returns the label shown for the job's vehicle: its name,
// then its VIN, then the raw vehicle id.
func (v JobView) VehicleDisplay() string {
	if v.Vehicle != nil {
		if v.Vehicle.Name != "" {
			return v.Vehicle.Name
		}
		if v.Vehicle.VIN != "" {
			return v.Vehicle.VIN
		}
	}
	return v.VehicleID
}

// Transition describes one applied approval change.
type Transition struct {
	JobID            string
	RecommendationID string
	From             ApprovalStatus
	To               ApprovalStatus
	Job              JobView
}

// Summary counts jobs per review state.
type Summary struct {
	Total             int
	NotReviewed       int
	PartiallyReviewed int
	Reviewed          int
	PendingApprovals  int
}

// Service exposes review-state operations over a Repo.
type Service struct {
	Repo     Repo
	Vehicles VehicleLookup
}

// NewService constructs a Service.
func NewService(repo Repo, vehicles VehicleLookup) *Service {
	return &Service{Repo: repo, Vehicles: vehicles}
}

// List returns jobs with derived review state, narrowed by filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]JobView, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("approvals service not configured")
	}
	jobs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]JobView, 0, len(jobs))
	for _, job := range BuildJobsWithReviewState(jobs) {
		if filter == FilterNeedsReview && job.ReviewState == ReviewReviewed {
			continue
		}
		out = append(out, s.view(ctx, job))
	}
	return out, nil
}

// Get returns one job with derived review state.
func (s *Service) Get(ctx context.Context, jobID string) (JobView, error) {
	if s == nil || s.Repo == nil {
		return JobView{}, errors.New("approvals service not configured")
	}
	if strings.TrimSpace(jobID) == "" {
		return JobView{}, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return JobView{}, err
	}
	return s.view(ctx, WithReviewState(job)), nil
}

// SetApproval records a decision on one recommendation and returns the
// updated job. Any status may follow any other; decisions stay reversible.
func (s *Service) SetApproval(ctx context.Context, jobID, recID string, status ApprovalStatus) (Transition, error) {
	if s == nil || s.Repo == nil {
		return Transition{}, errors.New("approvals service not configured")
	}
	if strings.TrimSpace(jobID) == "" || strings.TrimSpace(recID) == "" {
		return Transition{}, fmt.Errorf("%w: job id and recommendation id are required", ErrInvalidInput)
	}
	if !status.Valid() {
		return Transition{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	previous, err := s.Repo.SetApproval(ctx, jobID, recID, status)
	if err != nil {
		return Transition{}, err
	}

	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return Transition{}, err
	}
	view := s.view(ctx, WithReviewState(job))

	metrics.IncApprovalTransition()
	telemetry.Info("approval.transition", map[string]any{
		"job_id":            jobID,
		"recommendation_id": recID,
		"from":              string(previous),
		"to":                string(status),
		"review_state":      string(view.ReviewState),
		"pending_count":     view.PendingCount,
	})

	return Transition{
		JobID:            jobID,
		RecommendationID: recID,
		From:             previous,
		To:               status,
		Job:              view,
	}, nil
}

// Summary counts jobs per review state across the whole collection.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	if s == nil || s.Repo == nil {
		return Summary{}, errors.New("approvals service not configured")
	}
	jobs, err := s.Repo.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	var sum Summary
	for _, job := range BuildJobsWithReviewState(jobs) {
		sum.Total++
		sum.PendingApprovals += job.PendingCount
		switch job.ReviewState {
		case ReviewNotReviewed:
			sum.NotReviewed++
		case ReviewPartiallyReviewed:
			sum.PartiallyReviewed++
		case ReviewReviewed:
			sum.Reviewed++
		}
	}
	return sum, nil
}

func (s *Service) view(ctx context.Context, job JobWithReviewState) JobView {
	v := JobView{JobWithReviewState: job}
	if s.Vehicles == nil {
		return v
	}
	if vehicle, ok := s.Vehicles.FindVehicleByID(ctx, job.VehicleID); ok {
		v.Vehicle = &vehicle
	}
	return v
}
