package photos

import (
	"bytes"
	"context"
	"io"
	"testing"

	"fleet-backend/internal/shared/storage/object/local"
)

func TestSeedPlaceholdersSkipsExisting(t *testing.T) {
	ctx := context.Background()
	svc := NewService(local.New(t.TempDir()))

	if _, err := svc.Upload(ctx, "rec-1", bytes.NewReader(jpegHeader)); err != nil {
		t.Fatalf("upload: %v", err)
	}

	written, err := svc.SeedPlaceholders(ctx, []string{"rec-1", "rec-3"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(written) != 1 || written[0] != "rec-3" {
		t.Fatalf("expected only rec-3 to be seeded, got %v", written)
	}

	rc, info, err := svc.Open(ctx, "rec-3")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	if info.ContentType != "image/png" {
		t.Fatalf("expected image/png, got %q", info.ContentType)
	}

	rc1, info1, err := svc.Open(ctx, "rec-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc1.Close()
	got, _ := io.ReadAll(rc1)
	if info1.ContentType != "image/jpeg" || !bytes.Equal(got, jpegHeader) {
		t.Fatalf("existing photo was overwritten: %q", info1.ContentType)
	}

	written, err = svc.SeedPlaceholders(ctx, []string{"rec-3"})
	if err != nil || len(written) != 0 {
		t.Fatalf("expected second seed to be a no-op, got %v, %v", written, err)
	}
}

func TestSeedPlaceholdersRejectsBadID(t *testing.T) {
	svc := NewService(local.New(t.TempDir()))
	if _, err := svc.SeedPlaceholders(context.Background(), []string{"../etc"}); err == nil {
		t.Fatal("expected invalid id error")
	}
}
