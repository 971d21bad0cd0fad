package placement_service

import "context"

// Placement is the decision that a chunk lives on a specific worker.
type Placement struct {
	WorkerID      string
	WorkerAddress string
}

// PlacementService chooses a worker for a (fileID, chunkID) and records the
// choice. It is the only writer of worker assignments; decisions are
// immutable once made.
type PlacementService interface {
	AssignWorker(ctx context.Context, requesterWorkerID string, fileID string, chunkID int) (*Placement, error)
}
