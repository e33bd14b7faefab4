package vehicles

import "errors"

var (
	ErrNotFound     = errors.New("vehicle not found")
	ErrInvalidInput = errors.New("invalid vehicle input")
	ErrUnsupported  = errors.New("unsupported import format")
)
