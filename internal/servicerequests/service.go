package servicerequests

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fleet-backend/internal/shared/metrics"
	"fleet-backend/internal/shared/telemetry"
	"fleet-backend/internal/vehicles"
	"fleet-backend/internal/webhook"
)

// EventSubmitted names the webhook event for a new request.
const EventSubmitted = "service_request.submitted"

// VehicleDirectory resolves roster vehicles by id.
type VehicleDirectory interface {
	FindVehicleByID(ctx context.Context, id string) (vehicles.Vehicle, bool)
}

// Service validates, stores and forwards service requests.
type Service struct {
	Repo     Repo
	Vehicles VehicleDirectory
	Sink     webhook.Sink
	Now      func() time.Time
	NewID    func() string
}

// NewService constructs a Service with wall-clock time and UUID ids.
func NewService(repo Repo, dir VehicleDirectory, sink webhook.Sink) *Service {
	return &Service{Repo: repo, Vehicles: dir, Sink: sink, Now: time.Now, NewID: uuid.NewString}
}

// BuildPayload validates input and resolves the selected vehicles.
func (s *Service) BuildPayload(ctx context.Context, in Input, now time.Time) (Payload, error) {
	in = normalize(in)
	if err := Validate(in); err != nil {
		return Payload{}, err
	}

	refs := make([]VehicleRef, 0, len(in.VehicleIDs))
	for _, id := range in.VehicleIDs {
		v, ok := s.Vehicles.FindVehicleByID(ctx, id)
		if !ok {
			return Payload{}, invalid("Unknown vehicle: %s", id)
		}
		refs = append(refs, VehicleRef{
			ID:                v.ID,
			Name:              v.Name,
			VIN:               v.VIN,
			LicensePlate:      v.LicensePlate,
			LicensePlateState: v.LicensePlateState,
		})
	}

	services := make([]string, 0, len(in.Services))
	for _, svc := range in.Services {
		if svc == ServiceOther {
			svc = in.OtherService
		}
		services = append(services, svc)
	}

	var date *string
	if !in.Flexible {
		d := in.PreferredDate
		date = &d
	}

	return Payload{
		Vehicles:      refs,
		Services:      services,
		PreferredDate: date,
		PreferredTime: in.PreferredTime,
		SubmittedAt:   now.UTC().Format(time.RFC3339),
	}, nil
}

// Submit stores the request and delivers it to the sink. A failed delivery
// is recorded on the stored request and reported as ErrDeliveryFailed.
func (s *Service) Submit(ctx context.Context, submittedBy string, in Input) (Request, error) {
	now := s.now()
	payload, err := s.BuildPayload(ctx, in, now)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		ID:             s.NewID(),
		SubmittedBy:    submittedBy,
		Payload:        payload,
		DeliveryStatus: DeliveryPending,
		SubmittedAt:    now.UTC(),
	}
	if err := s.Repo.Create(ctx, req); err != nil {
		return Request{}, fmt.Errorf("store service request: %w", err)
	}
	metrics.IncServiceRequest()

	deliverErr := s.Sink.Deliver(ctx, EventSubmitted, payload)
	req.DeliveryStatus = DeliveryDelivered
	if deliverErr != nil {
		req.DeliveryStatus = DeliveryFailed
		req.DeliveryError = deliverErr.Error()
		metrics.IncServiceRequestFailed()
	}
	if err := s.Repo.UpdateDelivery(ctx, req.ID, req.DeliveryStatus, req.DeliveryError); err != nil {
		telemetry.Error("service_request.update_failed", map[string]any{
			"service_request_id": req.ID,
			"error":              err.Error(),
		})
	}

	telemetry.Info("service_request.submitted", map[string]any{
		"service_request_id": req.ID,
		"user_id":            submittedBy,
		"vehicles":           len(payload.Vehicles),
		"services":           len(payload.Services),
		"delivery_status":    req.DeliveryStatus,
	})
	if deliverErr != nil {
		return req, fmt.Errorf("%w: %v", ErrDeliveryFailed, deliverErr)
	}
	return req, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]Request, error) {
	return s.Repo.List(ctx, limit)
}

func (s *Service) Get(ctx context.Context, id string) (Request, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
