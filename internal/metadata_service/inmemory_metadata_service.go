package metadata_service

import (
	"context"
	"sort"
	"sync"
	"time"
)

type placementKey struct {
	fileID  string
	chunkID int
}

type InMemoryMetadataService struct {
	mu   sync.RWMutex
	rows map[placementKey]ChunkPlacement
}

func NewInMemoryMetadataService() *InMemoryMetadataService {
	return &InMemoryMetadataService{
		rows: make(map[placementKey]ChunkPlacement),
	}
}

func (ms *InMemoryMetadataService) CreateFileEntry(ctx context.Context, fileID string, filename string, size int64) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	key := placementKey{fileID: fileID, chunkID: 0}
	if _, exists := ms.rows[key]; exists {
		return ErrFileEntryExists
	}

	ms.rows[key] = ChunkPlacement{
		FileID:     fileID,
		ChunkID:    0,
		Filename:   filename,
		Size:       size,
		UploadTime: time.Now(),
	}
	return nil
}

func (ms *InMemoryMetadataService) FindByFilename(ctx context.Context, filename string) (*ChunkPlacement, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var matches []ChunkPlacement
	for _, row := range ms.rows {
		if row.Filename == filename {
			matches = append(matches, row)
		}
	}
	if len(matches) == 0 {
		return nil, ErrFileNotFound
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].FileID != matches[j].FileID {
			return matches[i].FileID < matches[j].FileID
		}
		return matches[i].ChunkID < matches[j].ChunkID
	})

	row := matches[0]
	return &row, nil
}

func (ms *InMemoryMetadataService) FindAllByFileID(ctx context.Context, fileID string) ([]ChunkPlacement, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var rows []ChunkPlacement
	for key, row := range ms.rows {
		if key.fileID == fileID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (ms *InMemoryMetadataService) FindByFileIDAndChunkID(ctx context.Context, fileID string, chunkID int) (*ChunkPlacement, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	row, exists := ms.rows[placementKey{fileID: fileID, chunkID: chunkID}]
	if !exists {
		return nil, ErrPlacementNotFound
	}
	return &row, nil
}

func (ms *InMemoryMetadataService) SavePlacement(ctx context.Context, placement ChunkPlacement) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	key := placementKey{fileID: placement.FileID, chunkID: placement.ChunkID}
	existing, exists := ms.rows[key]
	if !exists {
		ms.rows[key] = placement
		return nil
	}

	if existing.Assigned() {
		return ErrPlacementExists
	}

	// Fill the unassigned file entry in place, keeping its filename and size.
	existing.WorkerID = placement.WorkerID
	existing.WorkerAddress = placement.WorkerAddress
	existing.UploadTime = placement.UploadTime
	ms.rows[key] = existing
	return nil
}
