package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"fleet-backend/internal/shared/storage/object"
)

// Store implements ObjectStore using the local filesystem.
type Store struct {
	baseDir string
}

// New creates a new local object store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Put writes the reader to baseDir/key, replacing any previous object.
func (s *Store) Put(ctx context.Context, key string, r io.Reader) (object.Info, error) {
	if err := ctx.Err(); err != nil {
		return object.Info{}, err
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return object.Info{}, err
	}

	body, mimeType, err := object.SniffReader(r)
	if err != nil {
		return object.Info{}, fmt.Errorf("read sniff: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return object.Info{}, fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return object.Info{}, fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, body)
	if err != nil {
		_ = tmp.Close()
		return object.Info{}, fmt.Errorf("write body: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return object.Info{}, fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return object.Info{}, fmt.Errorf("rename: %w", err)
	}
	return object.Info{Key: key, ContentType: mimeType, Size: written}, nil
}

// Get opens a stored object for reading. The content type is sniffed from
// the first bytes of the file.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, object.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, object.Info{}, err
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, object.Info{}, err
	}

	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, object.Info{}, object.ErrNotFound
		}
		return nil, object.Info{}, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, object.Info{}, err
	}

	var head [512]byte
	n, _ := io.ReadFull(f, head[:])
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, object.Info{}, fmt.Errorf("seek: %w", err)
	}
	info := object.Info{
		Key:         key,
		ContentType: http.DetectContentType(head[:n]),
		Size:        stat.Size(),
	}
	return f, info, nil
}

func (s *Store) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.baseDir, clean), nil
}

var _ object.ObjectStore = (*Store)(nil)
