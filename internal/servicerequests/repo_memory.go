package servicerequests

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRepo keeps requests in process memory.
type MemoryRepo struct {
	mu       sync.RWMutex
	requests map[string]Request
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{requests: make(map[string]Request)}
}

func (r *MemoryRepo) Create(ctx context.Context, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.requests[req.ID]; exists {
		return fmt.Errorf("service request %q already exists", req.ID)
	}
	r.requests[req.ID] = req
	return nil
}

func (r *MemoryRepo) UpdateDelivery(ctx context.Context, id, status, deliveryErr string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return ErrNotFound
	}
	req.DeliveryStatus = status
	req.DeliveryError = deliveryErr
	r.requests[id] = req
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, limit int) ([]Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Request, 0, len(r.requests))
	for _, req := range r.requests {
		out = append(out, req)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Request, error) {
	if err := ctx.Err(); err != nil {
		return Request{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	return req, nil
}

var _ Repo = (*MemoryRepo)(nil)
