package approvals

import (
	"context"
	"errors"
	"testing"
)

type stubVehicles map[string]VehicleSummary

func (s stubVehicles) FindVehicleByID(ctx context.Context, id string) (VehicleSummary, bool) {
	_ = ctx
	v, ok := s[id]
	return v, ok
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(newSeededRepo(t), stubVehicles{
		"1": {ID: "1", Name: "ABC-1234", VIN: "1FTBR1CM5NKA12345"},
		"2": {ID: "2", VIN: "1GCVKREC1MZ123456"},
	})
}

func TestServiceListNeedsReviewFilter(t *testing.T) {
	svc := newTestService(t)

	all, err := svc.List(context.Background(), FilterAll)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(all))
	}

	needs, err := svc.List(context.Background(), FilterNeedsReview)
	if err != nil {
		t.Fatalf("List needs_review: %v", err)
	}
	if len(needs) != 2 {
		t.Fatalf("expected 2 jobs needing review, got %d", len(needs))
	}
	for _, job := range needs {
		if job.ReviewState == ReviewReviewed {
			t.Fatalf("reviewed job %s in needs_review list", job.ID)
		}
	}
}

func TestServiceVehicleDisplay(t *testing.T) {
	svc := newTestService(t)
	jobs, err := svc.List(context.Background(), FilterAll)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := map[string]string{
		"job-1": "ABC-1234",
		"job-2": "1GCVKREC1MZ123456",
		"job-3": "3",
	}
	for _, job := range jobs {
		if got := job.VehicleDisplay(); got != want[job.ID] {
			t.Fatalf("%s: vehicle display %q, want %q", job.ID, got, want[job.ID])
		}
	}
}

func TestServiceSetApprovalCompletesReview(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tr, err := svc.SetApproval(ctx, "job-2", "rec-5", StatusNotApproved)
	if err != nil {
		t.Fatalf("SetApproval: %v", err)
	}
	if tr.From != StatusPending || tr.To != StatusNotApproved {
		t.Fatalf("unexpected transition %s->%s", tr.From, tr.To)
	}
	if tr.Job.ReviewState != ReviewReviewed || tr.Job.PendingCount != 0 {
		t.Fatalf("expected reviewed/0, got %s/%d", tr.Job.ReviewState, tr.Job.PendingCount)
	}

	again, err := svc.Get(ctx, "job-2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.ReviewState != ReviewReviewed {
		t.Fatalf("expected derived state to be fresh on next read, got %s", again.ReviewState)
	}
}

func TestServiceSetApprovalErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SetApproval(ctx, "job-1", "rec-1", "maybe"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.SetApproval(ctx, "", "rec-1", StatusApproved); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.SetApproval(ctx, "job-404", "rec-1", StatusApproved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, "job-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceSummary(t *testing.T) {
	svc := newTestService(t)
	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	want := Summary{Total: 3, NotReviewed: 1, PartiallyReviewed: 1, Reviewed: 1, PendingApprovals: 3}
	if sum != want {
		t.Fatalf("got %+v, want %+v", sum, want)
	}
}

func TestParseFilterAndStatus(t *testing.T) {
	if f, err := ParseFilter(""); err != nil || f != FilterNeedsReview {
		t.Fatalf("empty filter: got %q, %v", f, err)
	}
	if f, err := ParseFilter(" ALL "); err != nil || f != FilterAll {
		t.Fatalf("ALL filter: got %q, %v", f, err)
	}
	if _, err := ParseFilter("recent"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if s, err := ParseStatus("Not_Approved"); err != nil || s != StatusNotApproved {
		t.Fatalf("status: got %q, %v", s, err)
	}
	if _, err := ParseStatus("declined"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
