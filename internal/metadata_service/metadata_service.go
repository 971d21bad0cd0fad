package metadata_service

import (
	"context"
	"time"
)

// ChunkPlacement is one row of the chunk-placement table, keyed by
// (FileID, ChunkID). A row with an empty WorkerID is the chunk-0 file entry
// written at ingest time, before any placement decision exists.
type ChunkPlacement struct {
	FileID        string
	ChunkID       int
	Filename      string
	Size          int64
	WorkerID      string
	WorkerAddress string
	UploadTime    time.Time
}

// Assigned reports whether the row carries a placement decision.
func (p ChunkPlacement) Assigned() bool {
	return p.WorkerID != ""
}

type MetadataService interface {
	// CreateFileEntry writes the chunk-0 row that records a file's existence,
	// with no worker assignment.
	CreateFileEntry(ctx context.Context, fileID string, filename string, size int64) error

	// FindByFilename returns one row matching the filename, deterministically
	// the lowest (FileID, ChunkID).
	FindByFilename(ctx context.Context, filename string) (*ChunkPlacement, error)

	FindAllByFileID(ctx context.Context, fileID string) ([]ChunkPlacement, error)

	FindByFileIDAndChunkID(ctx context.Context, fileID string, chunkID int) (*ChunkPlacement, error)

	// SavePlacement records a placement decision. If the row exists but is
	// unassigned, the worker fields are filled in place. If it already
	// carries a worker, ErrPlacementExists is returned and the row is left
	// untouched.
	SavePlacement(ctx context.Context, placement ChunkPlacement) error
}
