package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for a missing or invalid caller identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPermissionDenied is returned when the caller is known but not allowed.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrResourceExhausted is returned when a bounded operation ran out of attempts.
	ErrResourceExhausted = errors.New("resource exhausted")
)
