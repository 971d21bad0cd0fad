package placement_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AnishMulay/scatterstore/internal/log_service"
	"github.com/AnishMulay/scatterstore/internal/metadata_service"
	"github.com/AnishMulay/scatterstore/internal/worker_registry"
)

type nopLogService struct{}

func (nopLogService) Debug(log_service.LogEvent) {}
func (nopLogService) Info(log_service.LogEvent)  {}
func (nopLogService) Warn(log_service.LogEvent)  {}
func (nopLogService) Error(log_service.LogEvent) {}

func newTestOracle(workerIDs ...string) (*RoundRobinPlacementService, *metadata_service.InMemoryMetadataService) {
	registry := worker_registry.NewInMemoryWorkerRegistry(5*time.Second, nopLogService{})
	for _, id := range workerIDs {
		registry.Upsert(id, "localhost:"+id)
	}
	ms := metadata_service.NewInMemoryMetadataService()
	return NewRoundRobinPlacementService(registry, ms, nopLogService{}), ms
}

func TestRoundRobinPlacementService_NoActiveWorkers(t *testing.T) {
	ps, _ := newTestOracle()

	_, err := ps.AssignWorker(context.Background(), "w1", "f1", 0)
	if !errors.Is(err, ErrNoActiveWorkers) {
		t.Errorf("AssignWorker() error = %v, want %v", err, ErrNoActiveWorkers)
	}
}

func TestRoundRobinPlacementService_RoundRobinFairness(t *testing.T) {
	ps, _ := newTestOracle("w1", "w2", "w3")

	counts := make(map[string]int)
	const placements = 9
	for i := 0; i < placements; i++ {
		p, err := ps.AssignWorker(context.Background(), "w1", "f1", i)
		if err != nil {
			t.Fatalf("AssignWorker() error = %v", err)
		}
		counts[p.WorkerID]++
	}

	// Every worker gets at least floor(N/K) fresh placements.
	for _, id := range []string{"w1", "w2", "w3"} {
		if counts[id] < placements/3 {
			t.Errorf("worker %s chosen %d times, want at least %d", id, counts[id], placements/3)
		}
	}
}

func TestRoundRobinPlacementService_PlacementImmutable(t *testing.T) {
	ps, _ := newTestOracle("w1", "w2")

	first, err := ps.AssignWorker(context.Background(), "w1", "f1", 0)
	if err != nil {
		t.Fatalf("AssignWorker() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		_, err := ps.AssignWorker(context.Background(), "w2", "f1", 0)
		var already *AlreadyAssignedError
		if !errors.As(err, &already) {
			t.Fatalf("AssignWorker() error = %v, want AlreadyAssignedError", err)
		}
		if already.Placement.WorkerID != first.WorkerID {
			t.Errorf("redelivery returned %s, want recorded %s", already.Placement.WorkerID, first.WorkerID)
		}
	}
}

func TestRoundRobinPlacementService_FillsFileEntry(t *testing.T) {
	ps, ms := newTestOracle("w1")
	ctx := context.Background()

	if err := ms.CreateFileEntry(ctx, "f1", "a.txt", 100); err != nil {
		t.Fatalf("CreateFileEntry() error = %v", err)
	}

	if _, err := ps.AssignWorker(ctx, "w1", "f1", 0); err != nil {
		t.Fatalf("AssignWorker() error = %v", err)
	}

	row, err := ms.FindByFileIDAndChunkID(ctx, "f1", 0)
	if err != nil {
		t.Fatalf("FindByFileIDAndChunkID() error = %v", err)
	}
	if !row.Assigned() {
		t.Errorf("chunk-0 entry was not filled with a worker")
	}
	if row.Filename != "a.txt" || row.Size != 100 {
		t.Errorf("placement lost the file entry fields: %+v", row)
	}
}

func TestRoundRobinPlacementService_CopiesFilenameToLaterChunks(t *testing.T) {
	ps, ms := newTestOracle("w1")
	ctx := context.Background()

	_ = ms.CreateFileEntry(ctx, "f1", "a.txt", 300000)

	if _, err := ps.AssignWorker(ctx, "w1", "f1", 2); err != nil {
		t.Fatalf("AssignWorker() error = %v", err)
	}

	row, err := ms.FindByFileIDAndChunkID(ctx, "f1", 2)
	if err != nil {
		t.Fatalf("FindByFileIDAndChunkID() error = %v", err)
	}
	if row.Filename != "a.txt" {
		t.Errorf("chunk 2 filename = %q, want a.txt", row.Filename)
	}
}

func TestRoundRobinPlacementService_ExcludesReapedWorker(t *testing.T) {
	registry := worker_registry.NewInMemoryWorkerRegistry(5*time.Second, nopLogService{})
	registry.Upsert("w1", "localhost:7001")
	registry.Upsert("w2", "localhost:7002")
	ms := metadata_service.NewInMemoryMetadataService()
	ps := NewRoundRobinPlacementService(registry, ms, nopLogService{})

	registry.Reap(time.Now().Add(6 * time.Second))
	registry.Upsert("w1", "localhost:7001")

	for i := 0; i < 4; i++ {
		p, err := ps.AssignWorker(context.Background(), "w1", "f1", i)
		if err != nil {
			t.Fatalf("AssignWorker() error = %v", err)
		}
		if p.WorkerID != "w1" {
			t.Errorf("reaped worker selected: %s", p.WorkerID)
		}
	}
}
