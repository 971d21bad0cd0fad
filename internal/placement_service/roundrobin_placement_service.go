package placement_service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/AnishMulay/scatterstore/internal/log_service"
	"github.com/AnishMulay/scatterstore/internal/metadata_service"
	"github.com/AnishMulay/scatterstore/internal/worker_registry"
)

// RoundRobinPlacementService selects workers with a monotonically increasing
// counter over the active-worker snapshot. The counter is never reset;
// membership churn only skews distribution, it cannot break correctness.
type RoundRobinPlacementService struct {
	registry worker_registry.WorkerRegistry
	ms       metadata_service.MetadataService
	ls       log_service.LogService
	next     atomic.Uint64
}

func NewRoundRobinPlacementService(registry worker_registry.WorkerRegistry, ms metadata_service.MetadataService, ls log_service.LogService) *RoundRobinPlacementService {
	return &RoundRobinPlacementService{
		registry: registry,
		ms:       ms,
		ls:       ls,
	}
}

func (ps *RoundRobinPlacementService) AssignWorker(ctx context.Context, requesterWorkerID string, fileID string, chunkID int) (*Placement, error) {
	active := ps.registry.Active(time.Now())
	if len(active) == 0 {
		ps.ls.Warn(log_service.LogEvent{
			Message:  "No active workers for placement",
			Metadata: map[string]any{"fileId": fileID, "chunkId": chunkID, "requester": requesterWorkerID},
		})
		return nil, ErrNoActiveWorkers
	}

	existing, err := ps.ms.FindByFileIDAndChunkID(ctx, fileID, chunkID)
	if err != nil && !errors.Is(err, metadata_service.ErrPlacementNotFound) {
		return nil, err
	}
	if existing != nil && existing.Assigned() {
		return nil, &AlreadyAssignedError{Placement: Placement{
			WorkerID:      existing.WorkerID,
			WorkerAddress: existing.WorkerAddress,
		}}
	}

	idx := (ps.next.Add(1) - 1) % uint64(len(active))
	chosen := active[idx]

	row := metadata_service.ChunkPlacement{
		FileID:        fileID,
		ChunkID:       chunkID,
		WorkerID:      chosen.ID,
		WorkerAddress: chosen.Address,
		UploadTime:    time.Now(),
	}
	if existing != nil {
		row.Filename = existing.Filename
		row.Size = existing.Size
	} else if chunkID != 0 {
		// Carry the filename recorded on the chunk-0 entry so every row of a
		// file agrees on it.
		if entry, err := ps.ms.FindByFileIDAndChunkID(ctx, fileID, 0); err == nil {
			row.Filename = entry.Filename
			row.Size = entry.Size
		}
	}

	if err := ps.ms.SavePlacement(ctx, row); err != nil {
		if errors.Is(err, metadata_service.ErrPlacementExists) {
			// Lost the insert race; honor the winner.
			winner, rerr := ps.ms.FindByFileIDAndChunkID(ctx, fileID, chunkID)
			if rerr != nil {
				return nil, metadata_service.ErrIntegrityViolation
			}
			return nil, &AlreadyAssignedError{Placement: Placement{
				WorkerID:      winner.WorkerID,
				WorkerAddress: winner.WorkerAddress,
			}}
		}
		return nil, err
	}

	ps.ls.Info(log_service.LogEvent{
		Message: "Assigned worker for chunk",
		Metadata: map[string]any{
			"fileId":   fileID,
			"chunkId":  chunkID,
			"workerId": chosen.ID,
			"address":  chosen.Address,
		},
	})

	return &Placement{WorkerID: chosen.ID, WorkerAddress: chosen.Address}, nil
}
