package servicerequests

import "errors"

var (
	ErrNotFound       = errors.New("service request not found")
	ErrInvalidInput   = errors.New("invalid service request")
	ErrDeliveryFailed = errors.New("service request delivery failed")
)

// ValidationError carries the message shown to the person filling the form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
