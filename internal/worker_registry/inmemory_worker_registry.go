package worker_registry

import (
	"sort"
	"sync"
	"time"

	"github.com/AnishMulay/scatterstore/internal/log_service"
)

type InMemoryWorkerRegistry struct {
	mu              sync.RWMutex
	workers         map[string]*Worker
	livenessTimeout time.Duration
	ls              log_service.LogService
}

func NewInMemoryWorkerRegistry(livenessTimeout time.Duration, ls log_service.LogService) *InMemoryWorkerRegistry {
	if livenessTimeout <= 0 {
		livenessTimeout = DefaultLivenessTimeout
	}
	return &InMemoryWorkerRegistry{
		workers:         make(map[string]*Worker),
		livenessTimeout: livenessTimeout,
		ls:              ls,
	}
}

// Upsert inserts a worker or refreshes its heartbeat. The address is taken
// from the latest heartbeat because workers may move between restarts.
func (r *InMemoryWorkerRegistry) Upsert(workerID string, address string) {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.workers[workerID]; ok {
		w.Address = address
		w.LastHeartbeat = now
		return
	}

	r.workers[workerID] = &Worker{
		ID:            workerID,
		Address:       address,
		LastHeartbeat: now,
		JoinedAt:      now,
	}
	r.ls.Info(log_service.LogEvent{
		Message:  "Worker registered",
		Metadata: map[string]any{"workerId": workerID, "address": address},
	})
}

// Active returns a snapshot of workers whose last heartbeat is within the
// liveness window, ordered by join time so round-robin indexing is stable.
func (r *InMemoryWorkerRegistry) Active(now time.Time) []Worker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]Worker, 0, len(r.workers))
	for _, w := range r.workers {
		if now.Sub(w.LastHeartbeat) <= r.livenessTimeout {
			active = append(active, *w)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		if !active[i].JoinedAt.Equal(active[j].JoinedAt) {
			return active[i].JoinedAt.Before(active[j].JoinedAt)
		}
		return active[i].ID < active[j].ID
	})
	return active
}

// Reap removes workers whose heartbeat is older than the liveness window and
// returns the ids it removed.
func (r *InMemoryWorkerRegistry) Reap(now time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reaped []string
	for id, w := range r.workers {
		if now.Sub(w.LastHeartbeat) > r.livenessTimeout {
			delete(r.workers, id)
			reaped = append(reaped, id)
		}
	}

	if len(reaped) > 0 {
		r.ls.Warn(log_service.LogEvent{
			Message:  "Reaped stale workers",
			Metadata: map[string]any{"workerIds": reaped},
		})
	}
	return reaped
}
