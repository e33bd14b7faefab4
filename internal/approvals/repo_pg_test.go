package approvals

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var recommendationColumns = []string{
	"id", "job_id", "service_name", "category", "approval_status", "description",
	"condition_tags", "brake_pads", "rotors", "fluid", "photo_url",
}

func TestPGRepoGetByIDDecodesDetails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("FROM jobs").
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "service_date"}).
			AddRow("job-1", "1", "2025-01-15"))
	mock.ExpectQuery("FROM recommendations").
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows(recommendationColumns).
			AddRow("rec-1", "job-1", "Front brake pads", "recommended_immediately", "pending", "Uneven",
				[]byte(`["UNEVEN WEAR"]`), []byte(`{"thicknessDriverMm":4.2,"condition":"Uneven wear"}`), nil, nil, "/api/inspection-photos/rec-1").
			AddRow("rec-3", "job-1", "Front Brake Rotors", "all_systems_go", "pending", nil,
				nil, nil, []byte(`{"condition":"Good Condition"}`), nil, nil))

	job, err := repo.GetByID(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(job.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(job.Recommendations))
	}
	first := job.Recommendations[0]
	if first.BrakePads == nil || first.BrakePads.ThicknessDriverMm == nil || *first.BrakePads.ThicknessDriverMm != 4.2 {
		t.Fatalf("expected brake pad thickness 4.2, got %+v", first.BrakePads)
	}
	if len(first.ConditionTags) != 1 || first.ConditionTags[0] != "UNEVEN WEAR" {
		t.Fatalf("unexpected tags %v", first.ConditionTags)
	}
	if job.Recommendations[1].Rotors == nil || job.Recommendations[1].Rotors.Condition != "Good Condition" {
		t.Fatalf("expected rotor details on rec-3")
	}
	if got := DeriveReviewState(job.Recommendations); got != ReviewNotReviewed {
		t.Fatalf("expected not_reviewed, got %s", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM jobs").
		WithArgs("job-404").
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "service_date"}))

	_, err = (&PGRepo{DB: db}).GetByID(context.Background(), "job-404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoSetApprovalLocksJob(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM jobs WHERE id = \$1 FOR UPDATE`).
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("job-1"))
	mock.ExpectQuery("SELECT approval_status FROM recommendations").
		WithArgs("job-1", "rec-2").
		WillReturnRows(sqlmock.NewRows([]string{"approval_status"}).AddRow("pending"))
	mock.ExpectExec("UPDATE recommendations").
		WithArgs("approved", "job-1", "rec-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	prev, err := (&PGRepo{DB: db}).SetApproval(context.Background(), "job-1", "rec-2", StatusApproved)
	if err != nil {
		t.Fatalf("SetApproval: %v", err)
	}
	if prev != StatusPending {
		t.Fatalf("expected previous pending, got %s", prev)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSetApprovalUnknownRecommendation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("job-1"))
	mock.ExpectQuery("SELECT approval_status FROM recommendations").
		WithArgs("job-1", "rec-404").
		WillReturnRows(sqlmock.NewRows([]string{"approval_status"}))
	mock.ExpectRollback()

	_, err = (&PGRepo{DB: db}).SetApproval(context.Background(), "job-1", "rec-404", StatusApproved)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListGroupsRecommendations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM jobs").
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "service_date"}).
			AddRow("job-2", "2", "2025-01-14").
			AddRow("job-3", "3", "2025-01-13"))
	mock.ExpectQuery("FROM recommendations").
		WillReturnRows(sqlmock.NewRows(recommendationColumns).
			AddRow("rec-4", "job-2", "Rear brake rotors", "recommended_immediately", "approved", nil, nil, nil, nil, nil, nil).
			AddRow("rec-5", "job-2", "Brake hose inspection", "service_soon", "pending", nil, nil, nil, nil, nil, nil).
			AddRow("rec-6", "job-3", "Brake pads (all)", "recommended_immediately", "not_approved", nil, nil, nil, nil, nil, nil))

	jobs, err := (&PGRepo{DB: db}).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if len(jobs[0].Recommendations) != 2 || len(jobs[1].Recommendations) != 1 {
		t.Fatalf("unexpected grouping: %d/%d", len(jobs[0].Recommendations), len(jobs[1].Recommendations))
	}
	if got := DeriveReviewState(jobs[0].Recommendations); got != ReviewPartiallyReviewed {
		t.Fatalf("expected job-2 partially_reviewed, got %s", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
