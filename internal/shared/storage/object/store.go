package object

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
)

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("object not found")

// Info describes a stored object.
type Info struct {
	Key         string
	ContentType string
	Size        int64
}

// ObjectStore defines the contract for saving and retrieving binary objects
// under caller-chosen keys.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader) (Info, error)
	Get(ctx context.Context, key string) (io.ReadCloser, Info, error)
}

// SniffReader reads up to 512 bytes to detect the content type and returns a
// reader that replays them ahead of the rest of r.
func SniffReader(r io.Reader) (io.Reader, string, error) {
	var sniff [512]byte
	n, err := io.ReadFull(r, sniff[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, "", err
	}
	head := append([]byte(nil), sniff[:n]...)
	return io.MultiReader(bytes.NewReader(head), r), http.DetectContentType(head), nil
}
