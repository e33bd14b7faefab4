package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"fleet-backend/internal/shared/storage/object"
	"fleet-backend/internal/shared/util"
)

const keyPrefix = "inspection-photos/"

var (
	ErrNotFound  = errors.New("photo not found")
	ErrNotImage  = errors.New("photo must be an image")
	ErrInvalidID = errors.New("invalid recommendation id")
)

// Service stores inspection photos keyed by recommendation id.
type Service struct {
	Store object.ObjectStore
}

// NewService constructs a Service.
func NewService(store object.ObjectStore) *Service {
	return &Service{Store: store}
}

// Key returns the storage key for a recommendation's photo.
func Key(recID string) (string, error) {
	seg, err := util.SanitizeKeySegment(recID)
	if err != nil {
		return "", ErrInvalidID
	}
	return keyPrefix + seg, nil
}

// URL is the public path a recommendation's photoUrl points at.
func URL(recID string) string {
	return "/api/" + keyPrefix + recID
}

// Upload stores r as the photo for recID. Non-image content is rejected
// before anything is written.
func (s *Service) Upload(ctx context.Context, recID string, r io.Reader) (object.Info, error) {
	key, err := Key(recID)
	if err != nil {
		return object.Info{}, err
	}
	body, mimeType, err := object.SniffReader(r)
	if err != nil {
		return object.Info{}, fmt.Errorf("read photo: %w", err)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return object.Info{}, fmt.Errorf("%w: got %s", ErrNotImage, mimeType)
	}
	return s.Store.Put(ctx, key, body)
}

// Open returns the stored photo for recID.
func (s *Service) Open(ctx context.Context, recID string) (io.ReadCloser, object.Info, error) {
	key, err := Key(recID)
	if err != nil {
		return nil, object.Info{}, err
	}
	rc, info, err := s.Store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, object.Info{}, ErrNotFound
		}
		return nil, object.Info{}, err
	}
	return rc, info, nil
}
