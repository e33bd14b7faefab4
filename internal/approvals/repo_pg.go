package approvals

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectRecommendations = `
SELECT id, job_id, service_name, category, approval_status, description, condition_tags, brake_pads, rotors, fluid, photo_url
FROM recommendations`

// List returns all jobs, newest service date first, with their recommendations.
func (r *PGRepo) List(ctx context.Context) ([]Job, error) {
	const jobsQuery = `
SELECT id, vehicle_id, to_char(service_date, 'YYYY-MM-DD')
FROM jobs
ORDER BY service_date DESC, id`

	rows, err := r.DB.QueryContext(ctx, jobsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	index := make(map[string]int)
	for rows.Next() {
		var job Job
		if err := rows.Scan(&job.ID, &job.VehicleID, &job.Date); err != nil {
			return nil, err
		}
		job.Recommendations = []Recommendation{}
		index[job.ID] = len(jobs)
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return []Job{}, nil
	}

	recRows, err := r.DB.QueryContext(ctx, selectRecommendations+`
ORDER BY job_id, position`)
	if err != nil {
		return nil, err
	}
	defer recRows.Close()

	for recRows.Next() {
		rec, err := scanRecommendation(recRows)
		if err != nil {
			return nil, err
		}
		i, ok := index[rec.JobID]
		if !ok {
			continue
		}
		jobs[i].Recommendations = append(jobs[i].Recommendations, rec)
	}
	if err := recRows.Err(); err != nil {
		return nil, err
	}
	if err := ValidateJobs(jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetByID returns a single job with its recommendations.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const jobQuery = `
SELECT id, vehicle_id, to_char(service_date, 'YYYY-MM-DD')
FROM jobs
WHERE id = $1
LIMIT 1`
	var job Job
	err := r.DB.QueryRowContext(ctx, jobQuery, jobID).Scan(&job.ID, &job.VehicleID, &job.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}

	rows, err := r.DB.QueryContext(ctx, selectRecommendations+`
WHERE job_id = $1
ORDER BY position`, jobID)
	if err != nil {
		return Job{}, err
	}
	defer rows.Close()

	job.Recommendations = []Recommendation{}
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return Job{}, err
		}
		job.Recommendations = append(job.Recommendations, rec)
	}
	return job, rows.Err()
}

// SetApproval updates one recommendation's status. The job row is locked for
// the duration of the transaction so writers to the same job are serialized.
func (r *PGRepo) SetApproval(ctx context.Context, jobID, recID string, status ApprovalStatus) (ApprovalStatus, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var lockedID string
	if err := tx.QueryRowContext(ctx, `SELECT id FROM jobs WHERE id = $1 FOR UPDATE`, jobID).Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	var previous string
	err = tx.QueryRowContext(ctx,
		`SELECT approval_status FROM recommendations WHERE job_id = $1 AND id = $2`,
		jobID, recID,
	).Scan(&previous)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	const update = `
UPDATE recommendations
SET approval_status = $1, updated_at = now()
WHERE job_id = $2 AND id = $3`
	if _, err := tx.ExecContext(ctx, update, string(status), jobID, recID); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return ApprovalStatus(previous), nil
}

// Seed inserts jobs and recommendations that are not stored yet. Existing rows
// keep their current approval status.
func (r *PGRepo) Seed(ctx context.Context, jobs []Job) error {
	if err := ValidateJobs(jobs); err != nil {
		return err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insertJob = `
INSERT INTO jobs (id, vehicle_id, service_date)
VALUES ($1, $2, $3::date)
ON CONFLICT (id) DO NOTHING`
	const insertRec = `
INSERT INTO recommendations (
	id, job_id, position, service_name, category, approval_status, description,
	condition_tags, brake_pads, rotors, fluid, photo_url
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (job_id, id) DO NOTHING`

	for _, job := range jobs {
		if _, err := tx.ExecContext(ctx, insertJob, job.ID, job.VehicleID, job.Date); err != nil {
			return fmt.Errorf("insert job %s: %w", job.ID, err)
		}
		for pos, rec := range job.Recommendations {
			tags, err := marshalJSONB(rec.ConditionTags)
			if err != nil {
				return err
			}
			brakePads, err := marshalJSONB(rec.BrakePads)
			if err != nil {
				return err
			}
			rotors, err := marshalJSONB(rec.Rotors)
			if err != nil {
				return err
			}
			fluid, err := marshalJSONB(rec.Fluid)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, insertRec,
				rec.ID,
				job.ID,
				pos,
				rec.ServiceName,
				string(rec.Category),
				string(rec.ApprovalStatus),
				nullableString(rec.Description),
				tags,
				brakePads,
				rotors,
				fluid,
				nullableString(rec.PhotoURL),
			); err != nil {
				return fmt.Errorf("insert recommendation %s: %w", rec.ID, err)
			}
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecommendation(row rowScanner) (Recommendation, error) {
	var rec Recommendation
	var category, status string
	var description, photoURL sql.NullString
	var tags, brakePads, rotors, fluid []byte
	if err := row.Scan(
		&rec.ID,
		&rec.JobID,
		&rec.ServiceName,
		&category,
		&status,
		&description,
		&tags,
		&brakePads,
		&rotors,
		&fluid,
		&photoURL,
	); err != nil {
		return Recommendation{}, err
	}
	rec.Category = Category(category)
	rec.ApprovalStatus = ApprovalStatus(status)
	if description.Valid {
		rec.Description = description.String
	}
	if photoURL.Valid {
		rec.PhotoURL = photoURL.String
	}
	if err := unmarshalJSONB(tags, &rec.ConditionTags); err != nil {
		return Recommendation{}, fmt.Errorf("decode condition_tags for %s: %w", rec.ID, err)
	}
	if err := unmarshalJSONB(brakePads, &rec.BrakePads); err != nil {
		return Recommendation{}, fmt.Errorf("decode brake_pads for %s: %w", rec.ID, err)
	}
	if err := unmarshalJSONB(rotors, &rec.Rotors); err != nil {
		return Recommendation{}, fmt.Errorf("decode rotors for %s: %w", rec.ID, err)
	}
	if err := unmarshalJSONB(fluid, &rec.Fluid); err != nil {
		return Recommendation{}, fmt.Errorf("decode fluid for %s: %w", rec.ID, err)
	}
	return rec, nil
}

func marshalJSONB(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		if v == nil {
			return nil, nil
		}
	case *BrakePadsDetails:
		if v == nil {
			return nil, nil
		}
	case *RotorsDetails:
		if v == nil {
			return nil, nil
		}
	case *FluidDetails:
		if v == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func unmarshalJSONB(data []byte, dest any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, dest)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
