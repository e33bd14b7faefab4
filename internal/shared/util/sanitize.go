package util

import (
	"errors"
	"strings"
)

// SanitizeKeySegment makes an identifier safe to use as one segment of an
// object storage key. Traversal patterns are rejected.
func SanitizeKeySegment(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid key segment")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid key segment")
	}
	return s, nil
}
