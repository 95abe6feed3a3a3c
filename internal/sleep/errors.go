package sleep

import "errors"

var (
	// ErrNotFound means no log exists for the requested day.
	ErrNotFound = errors.New("sleep log not found")

	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
