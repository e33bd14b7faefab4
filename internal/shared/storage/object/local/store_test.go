package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"fleet-backend/internal/shared/storage/object"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestPutGetRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	info, err := store.Put(ctx, "inspection-photos/rec-1", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if info.ContentType != "image/png" || info.Size != int64(len(pngHeader)) {
		t.Fatalf("unexpected info %+v", info)
	}

	rc, got, err := store.Get(ctx, "inspection-photos/rec-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Fatalf("content mismatch")
	}
	if got.ContentType != "image/png" {
		t.Fatalf("expected image/png on read, got %q", got.ContentType)
	}
}

func TestGetMissingAndTraversal(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, _, err := store.Get(ctx, "inspection-photos/none"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Put(ctx, "../escape", bytes.NewReader(pngHeader)); err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
}
