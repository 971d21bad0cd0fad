package chunk_service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnishMulay/scatterstore/internal/log_service"
)

// LocalDiscChunkService stores one file per chunk under
// <storageRoot>/<workerID>/. The on-disk key includes the file id so two
// files sharing a worker can never collide on a chunk id.
type LocalDiscChunkService struct {
	baseDir string
	ls      log_service.LogService
}

func NewLocalDiscChunkService(storageRoot string, workerID string, ls log_service.LogService) *LocalDiscChunkService {
	baseDir := filepath.Join(storageRoot, workerID)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		panic(err)
	}
	return &LocalDiscChunkService{
		baseDir: baseDir,
		ls:      ls,
	}
}

func (cs *LocalDiscChunkService) chunkPath(fileID string, chunkID int) string {
	return filepath.Join(cs.baseDir, fmt.Sprintf("%s_%d.chunk", fileID, chunkID))
}

func (cs *LocalDiscChunkService) WriteChunk(fileID string, chunkID int, data []byte) error {
	path := cs.chunkPath(fileID, chunkID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		cs.ls.Error(log_service.LogEvent{
			Message:  "Failed to write chunk",
			Metadata: map[string]any{"fileId": fileID, "chunkId": chunkID, "error": err.Error()},
		})
		return err
	}

	cs.ls.Debug(log_service.LogEvent{
		Message:  "Chunk written",
		Metadata: map[string]any{"fileId": fileID, "chunkId": chunkID, "size": len(data)},
	})
	return nil
}

func (cs *LocalDiscChunkService) ReadChunk(fileID string, chunkID int) ([]byte, error) {
	path := cs.chunkPath(fileID, chunkID)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, ErrChunkNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		cs.ls.Error(log_service.LogEvent{
			Message:  "Failed to read chunk",
			Metadata: map[string]any{"fileId": fileID, "chunkId": chunkID, "error": err.Error()},
		})
		return nil, ErrChunkNotFound
	}
	return data, nil
}

func (cs *LocalDiscChunkService) DeleteChunk(fileID string, chunkID int) error {
	return os.Remove(cs.chunkPath(fileID, chunkID))
}
