package placement_service

import (
	"errors"
	"fmt"
)

var (
	ErrNoActiveWorkers = errors.New("no active workers available")
)

// AlreadyAssignedError reports that a placement already exists for the chunk.
// It carries the recorded decision so the caller can honor it.
type AlreadyAssignedError struct {
	Placement Placement
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("chunk already assigned to worker %s", e.Placement.WorkerID)
}
