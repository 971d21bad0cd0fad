package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/AnishMulay/scatterstore/internal/chunk_service"
	"github.com/AnishMulay/scatterstore/internal/communication"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkerServer(t *testing.T) *WorkerServer {
	t.Helper()
	cs := chunk_service.NewLocalDiscChunkService(t.TempDir(), "w1", nopLogService{})
	return NewWorkerServer(nil, cs, nil, nil, nopLogService{}, "w1")
}

func storeChunk(t *testing.T, s *WorkerServer, req communication.StoreChunkRequest) (*communication.Response, communication.StoreChunkResponse) {
	t.Helper()
	resp, err := s.HandleMessage(context.Background(), communication.Message{
		From:    "peer",
		Type:    communication.MessageTypeStoreChunk,
		Payload: req,
	})
	require.NoError(t, err)

	var result communication.StoreChunkResponse
	require.NoError(t, json.Unmarshal(resp.Body, &result))
	return resp, result
}

func TestWorkerServer_StoreAndRetrieveChunk(t *testing.T) {
	s := newTestWorkerServer(t)

	resp, stored := storeChunk(t, s, communication.StoreChunkRequest{
		WorkerID:  "w1",
		FileID:    "f1",
		ChunkID:   0,
		ChunkData: []byte("chunk bytes"),
	})
	assert.Equal(t, communication.CodeOK, resp.Code)
	assert.True(t, stored.Success)

	resp, err := s.HandleMessage(context.Background(), communication.Message{
		From: "scheduler",
		Type: communication.MessageTypeRetrieveChunk,
		Payload: communication.RetrieveChunkRequest{
			WorkerID: "w1",
			FileID:   "f1",
			ChunkID:  0,
		},
	})
	require.NoError(t, err)
	require.Equal(t, communication.CodeOK, resp.Code)

	var retrieved communication.RetrieveChunkResponse
	require.NoError(t, json.Unmarshal(resp.Body, &retrieved))
	assert.True(t, retrieved.Found)
	assert.Equal(t, []byte("chunk bytes"), retrieved.ChunkData)
}

func TestWorkerServer_StoreChunkRejectsForeignWorkerID(t *testing.T) {
	s := newTestWorkerServer(t)

	resp, stored := storeChunk(t, s, communication.StoreChunkRequest{
		WorkerID:  "w2",
		FileID:    "f1",
		ChunkID:   0,
		ChunkData: []byte("x"),
	})
	assert.Equal(t, communication.CodeBadRequest, resp.Code)
	assert.False(t, stored.Success)
}

func TestWorkerServer_RetrieveChunkNotFound(t *testing.T) {
	s := newTestWorkerServer(t)

	resp, err := s.HandleMessage(context.Background(), communication.Message{
		From: "scheduler",
		Type: communication.MessageTypeRetrieveChunk,
		Payload: communication.RetrieveChunkRequest{
			WorkerID: "w1",
			FileID:   "nope",
			ChunkID:  0,
		},
	})
	require.NoError(t, err)
	require.Equal(t, communication.CodeOK, resp.Code)

	var retrieved communication.RetrieveChunkResponse
	require.NoError(t, json.Unmarshal(resp.Body, &retrieved))
	assert.False(t, retrieved.Found)
	assert.Empty(t, retrieved.ChunkData)
}
