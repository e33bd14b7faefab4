package approvals

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid approval status")
	ErrInvalidJob    = errors.New("invalid job")
)
