package photos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

// placeholderPNG renders a small grey tile standing in for an inspection photo.
func placeholderPNG() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			c := color.RGBA{R: 200, G: 200, B: 200, A: 255}
			if x == 0 || y == 0 || x == 63 || y == 47 {
				c = color.RGBA{R: 120, G: 120, B: 120, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SeedPlaceholders stores a placeholder image for each recommendation id that
// has no photo yet. Existing photos are left alone. It returns the ids written.
func (s *Service) SeedPlaceholders(ctx context.Context, recIDs []string) ([]string, error) {
	var body []byte
	var written []string
	for _, id := range recIDs {
		rc, _, err := s.Open(ctx, id)
		if err == nil {
			_ = rc.Close()
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return written, fmt.Errorf("check photo %s: %w", id, err)
		}
		if body == nil {
			if body, err = placeholderPNG(); err != nil {
				return written, fmt.Errorf("render placeholder: %w", err)
			}
		}
		if _, err := s.Upload(ctx, id, bytes.NewReader(body)); err != nil {
			return written, fmt.Errorf("seed photo %s: %w", id, err)
		}
		written = append(written, id)
	}
	return written, nil
}
