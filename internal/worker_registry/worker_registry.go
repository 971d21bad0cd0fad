package worker_registry

import "time"

// DefaultLivenessTimeout is how long a worker stays a placement candidate
// after its last heartbeat.
const DefaultLivenessTimeout = 5 * time.Second

type Worker struct {
	ID            string
	Address       string
	LastHeartbeat time.Time
	JoinedAt      time.Time
}

// WorkerRegistry is the scheduler's directory of workers. It is process-local
// and non-durable: after a restart the scheduler knows no workers until they
// heartbeat again.
type WorkerRegistry interface {
	Upsert(workerID string, address string)
	Active(now time.Time) []Worker
	Reap(now time.Time) []string
}
