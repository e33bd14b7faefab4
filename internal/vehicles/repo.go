package vehicles

import "context"

// Repo persists the roster.
type Repo interface {
	List(ctx context.Context) ([]Vehicle, error)
	Get(ctx context.Context, id string) (Vehicle, error)
	// Create stores all vehicles or none of them.
	Create(ctx context.Context, vehicles []Vehicle) error
	Update(ctx context.Context, v Vehicle) error
	Delete(ctx context.Context, id string) error
}
