package vehicles

import (
	"context"
	"fmt"
	"sync"
)

// MemoryRepo is an in-memory roster kept in insertion order.
type MemoryRepo struct {
	mu       sync.RWMutex
	vehicles []Vehicle
}

// NewMemoryRepo constructs a MemoryRepo holding a copy of seed.
func NewMemoryRepo(seed []Vehicle) *MemoryRepo {
	return &MemoryRepo{vehicles: append([]Vehicle(nil), seed...)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Vehicle(nil), r.vehicles...), nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return Vehicle{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.vehicles[i], nil
	}
	return Vehicle{}, ErrNotFound
}

func (r *MemoryRepo) Create(ctx context.Context, vehicles []Vehicle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{}, len(vehicles))
	for _, v := range vehicles {
		if _, dup := seen[v.ID]; dup || r.indexOf(v.ID) >= 0 {
			return fmt.Errorf("vehicle id %q already exists", v.ID)
		}
		seen[v.ID] = struct{}{}
	}
	r.vehicles = append(r.vehicles, vehicles...)
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, v Vehicle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(v.ID)
	if i < 0 {
		return ErrNotFound
	}
	r.vehicles[i] = v
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	next := make([]Vehicle, 0, len(r.vehicles)-1)
	next = append(next, r.vehicles[:i]...)
	r.vehicles = append(next, r.vehicles[i+1:]...)
	return nil
}

func (r *MemoryRepo) indexOf(id string) int {
	for i := range r.vehicles {
		if r.vehicles[i].ID == id {
			return i
		}
	}
	return -1
}

var _ Repo = (*MemoryRepo)(nil)
