package file_service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/AnishMulay/scatterstore/internal/chunk_queue"
	"github.com/AnishMulay/scatterstore/internal/communication"
	"github.com/AnishMulay/scatterstore/internal/log_service"
	"github.com/AnishMulay/scatterstore/internal/metadata_service"
	"github.com/google/uuid"
)

// DispersedFileService implements ingest by chunk-and-publish and reads by
// chunk-at-a-time retrieval from the workers recorded in metadata.
type DispersedFileService struct {
	ms        metadata_service.MetadataService
	publisher chunk_queue.ChunkPublisher
	comm      communication.Communicator
	ls        log_service.LogService
	chunkSize int64
	selfID    string
}

func NewDispersedFileService(ms metadata_service.MetadataService, publisher chunk_queue.ChunkPublisher, comm communication.Communicator, ls log_service.LogService, chunkSize int64, selfID string) *DispersedFileService {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &DispersedFileService{
		ms:        ms,
		publisher: publisher,
		comm:      comm,
		ls:        ls,
		chunkSize: chunkSize,
		selfID:    selfID,
	}
}

func (fs *DispersedFileService) StoreFile(ctx context.Context, filename string, data []byte) (int, error) {
	fileID := uuid.New().String()

	fs.ls.Info(log_service.LogEvent{
		Message:  "Storing file",
		Metadata: map[string]any{"filename": filename, "fileId": fileID, "size": len(data)},
	})

	if err := fs.ms.CreateFileEntry(ctx, fileID, filename, int64(len(data))); err != nil {
		fs.ls.Error(log_service.LogEvent{
			Message:  "Failed to create file entry",
			Metadata: map[string]any{"filename": filename, "fileId": fileID, "error": err.Error()},
		})
		return 0, ErrMetadataCreateFailed
	}

	chunkID := 0
	offset := 0
	for offset < len(data) {
		end := offset + int(fs.chunkSize)
		if end > len(data) {
			end = len(data)
		}

		msg := chunk_queue.ChunkMessage{
			FileID:  fileID,
			ChunkID: chunkID,
			Data:    data[offset:end],
		}
		if err := fs.publisher.PublishChunk(ctx, msg); err != nil {
			fs.ls.Error(log_service.LogEvent{
				Message:  "Failed to publish chunk",
				Metadata: map[string]any{"fileId": fileID, "chunkId": chunkID, "error": err.Error()},
			})
			return chunkID, ErrChunkPublishFailed
		}

		chunkID++
		offset = end
	}

	fs.ls.Info(log_service.LogEvent{
		Message:  "File ingested",
		Metadata: map[string]any{"filename": filename, "fileId": fileID, "chunks": chunkID},
	})
	return chunkID, nil
}

func (fs *DispersedFileService) ReadFile(ctx context.Context, filename string) ([]byte, error) {
	entry, err := fs.ms.FindByFilename(ctx, filename)
	if err != nil {
		if errors.Is(err, metadata_service.ErrFileNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	rows, err := fs.ms.FindAllByFileID(ctx, entry.FileID)
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].ChunkID < rows[j].ChunkID })

	data := make([]byte, 0, entry.Size)
	for _, row := range rows {
		if !row.Assigned() {
			// Chunk-0 file entry with no placement; nothing stored for it.
			continue
		}

		chunkData, err := fs.retrieveChunk(ctx, row)
		if err != nil {
			fs.ls.Error(log_service.LogEvent{
				Message:  "Failed to retrieve chunk",
				Metadata: map[string]any{"fileId": row.FileID, "chunkId": row.ChunkID, "workerId": row.WorkerID, "error": err.Error()},
			})
			return nil, ErrChunkRetrieveFailed
		}
		data = append(data, chunkData...)
	}

	fs.ls.Info(log_service.LogEvent{
		Message:  "File read successfully",
		Metadata: map[string]any{"filename": filename, "fileId": entry.FileID, "size": len(data)},
	})
	return data, nil
}

func (fs *DispersedFileService) retrieveChunk(ctx context.Context, row metadata_service.ChunkPlacement) ([]byte, error) {
	resp, err := fs.comm.Send(ctx, row.WorkerAddress, communication.Message{
		From: fs.selfID,
		Type: communication.MessageTypeRetrieveChunk,
		Payload: communication.RetrieveChunkRequest{
			WorkerID: row.WorkerID,
			FileID:   row.FileID,
			ChunkID:  row.ChunkID,
		},
	})
	if err != nil {
		return nil, err
	}
	if resp.Code != communication.CodeOK {
		return nil, ErrChunkRetrieveFailed
	}

	var payload communication.RetrieveChunkResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, err
	}
	if !payload.Found {
		return nil, ErrChunkRetrieveFailed
	}
	return payload.ChunkData, nil
}
