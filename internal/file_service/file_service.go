package file_service

import "context"

// DefaultChunkSize is the fixed split size for ingested files. The last
// chunk of a file may be short.
const DefaultChunkSize = 128 * 1024

// FileService is the scheduler's ingest and reassembly surface.
type FileService interface {
	// StoreFile splits the bytes into chunks and publishes them for
	// placement. It returns the number of chunks sent; a zero-byte file
	// sends zero chunks.
	StoreFile(ctx context.Context, filename string, data []byte) (int, error)

	// ReadFile resolves a filename, fetches every placed chunk from its
	// recorded worker, and returns the reassembled bytes.
	ReadFile(ctx context.Context, filename string) ([]byte, error)
}
