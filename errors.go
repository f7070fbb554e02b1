package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested identifier does not exist in the
// authoritative store. It is a distinct, user-visible outcome; cache
// unavailability is never converted into it.
var ErrNotFound = errors.New("product not found")

// ValidationError reports malformed input. The orchestrator never
// proceeds on invalid input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
