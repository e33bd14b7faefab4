package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB Pinger
}

// NewService constructs a health service. A nil db means in-memory storage.
func NewService(db Pinger) *Service {
	return &Service{DB: db}
}

// Status reports readiness along with the storage backend in use.
func (s *Service) Status(ctx context.Context) (map[string]any, error) {
	if s == nil || s.DB == nil {
		return map[string]any{"ok": true, "storage": "memory"}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		return map[string]any{"ok": false, "storage": "postgres"}, err
	}
	return map[string]any{"ok": true, "storage": "postgres"}, nil
}
