package vehicles

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fleet-backend/internal/shared/metrics"
	"fleet-backend/internal/shared/telemetry"
)

// Service implements roster operations on top of a Repo.
type Service struct {
	Repo  Repo
	NewID func() string
}

// NewService constructs a Service issuing UUID ids.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, NewID: uuid.NewString}
}

func (s *Service) List(ctx context.Context) ([]Vehicle, error) {
	return s.Repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Vehicle, error) {
	return s.Repo.Get(ctx, id)
}

// FindVehicleByID returns the vehicle for id, or false when it is absent.
func (s *Service) FindVehicleByID(ctx context.Context, id string) (Vehicle, bool) {
	v, err := s.Repo.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			telemetry.Error("vehicles.lookup_failed", map[string]any{"vehicle_id": id, "error": err.Error()})
		}
		return Vehicle{}, false
	}
	return v, true
}

// Create validates in and adds one vehicle. An empty name defaults to the
// license plate.
func (s *Service) Create(ctx context.Context, in Input) (Vehicle, error) {
	created, err := s.CreateMany(ctx, []Input{in})
	if err != nil {
		return Vehicle{}, err
	}
	return created[0], nil
}

// CreateMany validates every input before storing any of them.
func (s *Service) CreateMany(ctx context.Context, inputs []Input) ([]Vehicle, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no vehicles to create", ErrInvalidInput)
	}
	out := make([]Vehicle, 0, len(inputs))
	for i, raw := range inputs {
		in := raw.normalize()
		if err := validateInput(in); err != nil {
			if len(inputs) > 1 {
				return nil, fmt.Errorf("vehicle %d: %w", i+1, err)
			}
			return nil, err
		}
		out = append(out, in.toVehicle(s.newID()))
	}
	if err := s.Repo.Create(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial update. Required fields cannot be cleared.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Vehicle, error) {
	current, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Vehicle{}, err
	}
	next := patch.apply(current)
	if err := validateInput(inputFromVehicle(next)); err != nil {
		return Vehicle{}, err
	}
	if err := s.Repo.Update(ctx, next); err != nil {
		return Vehicle{}, err
	}
	return next, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// Import stores the valid rows of a parsed file unless dryRun is set.
func (s *Service) Import(ctx context.Context, parsed ImportResult, dryRun bool) (ImportResult, error) {
	if dryRun || len(parsed.Rows) == 0 {
		return parsed, nil
	}
	created, err := s.CreateMany(ctx, parsed.Rows)
	if err != nil {
		return ImportResult{}, err
	}
	parsed.Created = created
	metrics.AddVehiclesImported(len(created), len(parsed.Errors))
	telemetry.Info("vehicles.imported", map[string]any{
		"imported": len(created),
		"skipped":  len(parsed.Errors),
	})
	return parsed, nil
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
