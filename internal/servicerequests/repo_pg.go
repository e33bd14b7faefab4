package servicerequests

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo stores requests in the service_requests table with the payload as JSONB.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, req Request) error {
	payload, err := json.Marshal(req.Payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	const query = `
INSERT INTO service_requests (id, submitted_by, payload, delivery_status, delivery_error, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.DB.ExecContext(ctx, query,
		req.ID, req.SubmittedBy, payload, req.DeliveryStatus, nullableString(req.DeliveryError), req.SubmittedAt,
	); err != nil {
		return fmt.Errorf("insert service request: %w", err)
	}
	return nil
}

func (r *PGRepo) UpdateDelivery(ctx context.Context, id, status, deliveryErr string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE service_requests SET delivery_status = $2, delivery_error = $3 WHERE id = $1`,
		id, status, nullableString(deliveryErr),
	)
	if err != nil {
		return fmt.Errorf("update service request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const selectRequests = `
SELECT id, submitted_by, payload, delivery_status, delivery_error, submitted_at
FROM service_requests`

func (r *PGRepo) List(ctx context.Context, limit int) ([]Request, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.QueryContext(ctx, selectRequests+` ORDER BY submitted_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query service requests: %w", err)
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, id string) (Request, error) {
	req, err := scanRequest(r.DB.QueryRowContext(ctx, selectRequests+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}
	return req, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(s rowScanner) (Request, error) {
	var (
		req         Request
		payload     []byte
		deliveryErr sql.NullString
	)
	if err := s.Scan(&req.ID, &req.SubmittedBy, &payload, &req.DeliveryStatus, &deliveryErr, &req.SubmittedAt); err != nil {
		return Request{}, err
	}
	if err := json.Unmarshal(payload, &req.Payload); err != nil {
		return Request{}, fmt.Errorf("decode payload for %s: %w", req.ID, err)
	}
	req.DeliveryError = deliveryErr.String
	return req, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Repo = (*PGRepo)(nil)
