package servicerequests

import "context"

// Repo persists submitted requests.
type Repo interface {
	Create(ctx context.Context, req Request) error
	UpdateDelivery(ctx context.Context, id, status, deliveryErr string) error
	// List returns requests newest first.
	List(ctx context.Context, limit int) ([]Request, error)
	Get(ctx context.Context, id string) (Request, error)
}
