package chunk_service

import "errors"

var (
	ErrChunkNotFound    = errors.New("chunk not found")
	ErrChunkWriteFailed = errors.New("failed to write chunk")
)
