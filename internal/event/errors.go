package event

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the handlers: InvalidInput → 400, NotFound → 404,
// ConflictError → 409, anything else → 500.
var (
	ErrNotFound     = errors.New("event not found")
	ErrInvalidInput = errors.New("invalid input")
)

// ConflictError carries the fixed events blocking a reschedule so the caller
// can display them. The target event is never mutated when this is returned.
type ConflictError struct {
	Conflicts []ConflictingEvent
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("scheduling conflict with %d fixed event(s)", len(e.Conflicts))
}
