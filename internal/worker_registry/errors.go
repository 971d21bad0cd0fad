package worker_registry

import "errors"

var (
	ErrWorkerNotFound = errors.New("worker not found")
)
