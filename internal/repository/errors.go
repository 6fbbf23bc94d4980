package repository

import "fmt"

// ValidationError signals user input that violates a precondition (empty
// name, fewer than two waypoints). Nothing is mutated when it is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// NotFoundError signals an operation referencing an unknown path id, usually
// a race between deletion and a stale reference. Callers treat it as an
// implicit cancellation of any animation tied to that id; it is never fatal.
type NotFoundError struct {
	PathID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("path %q not found", e.PathID)
}
