package server

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/AnishMulay/scatterstore/internal/chunk_service"
	"github.com/AnishMulay/scatterstore/internal/communication"
	"github.com/AnishMulay/scatterstore/internal/consumer_service"
	"github.com/AnishMulay/scatterstore/internal/heartbeat_service"
	"github.com/AnishMulay/scatterstore/internal/log_service"
)

// WorkerServer owns a worker's RPC surface, its chunk consumer, and its
// heartbeat loop.
type WorkerServer struct {
	comm     communication.Communicator
	cs       chunk_service.ChunkService
	consumer *consumer_service.ChunkTaskConsumer
	hb       *heartbeat_service.HeartbeatService
	ls       log_service.LogService
	workerID string
}

func NewWorkerServer(comm communication.Communicator, cs chunk_service.ChunkService, consumer *consumer_service.ChunkTaskConsumer, hb *heartbeat_service.HeartbeatService, ls log_service.LogService, workerID string) *WorkerServer {
	return &WorkerServer{
		comm:     comm,
		cs:       cs,
		consumer: consumer,
		hb:       hb,
		ls:       ls,
		workerID: workerID,
	}
}

func (s *WorkerServer) Start() error {
	if err := s.comm.Start(s.HandleMessage); err != nil {
		return err
	}
	if s.consumer != nil {
		if err := s.consumer.Start(); err != nil {
			_ = s.comm.Stop()
			return err
		}
	}
	if s.hb != nil {
		s.hb.Start()
	}

	s.ls.Info(log_service.LogEvent{
		Message:  "Worker started",
		Metadata: map[string]any{"workerId": s.workerID, "rpcAddress": s.comm.Address()},
	})
	return nil
}

func (s *WorkerServer) Stop() error {
	if s.hb != nil {
		s.hb.Stop()
	}
	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			s.ls.Warn(log_service.LogEvent{
				Message:  "Consumer stop failed",
				Metadata: map[string]any{"error": err.Error()},
			})
		}
	}
	return s.comm.Stop()
}

// HandleMessage dispatches the worker's two RPC operations.
func (s *WorkerServer) HandleMessage(ctx context.Context, msg communication.Message) (*communication.Response, error) {
	switch msg.Type {
	case communication.MessageTypeStoreChunk:
		req, ok := msg.Payload.(communication.StoreChunkRequest)
		if !ok {
			return &communication.Response{Code: communication.CodeBadRequest}, nil
		}
		return s.handleStoreChunk(req)

	case communication.MessageTypeRetrieveChunk:
		req, ok := msg.Payload.(communication.RetrieveChunkRequest)
		if !ok {
			return &communication.Response{Code: communication.CodeBadRequest}, nil
		}
		return s.handleRetrieveChunk(req)

	default:
		s.ls.Warn(log_service.LogEvent{
			Message:  "Unhandled message type",
			Metadata: map[string]any{"type": msg.Type, "from": msg.From},
		})
		return &communication.Response{Code: communication.CodeBadRequest}, nil
	}
}

func (s *WorkerServer) handleStoreChunk(req communication.StoreChunkRequest) (*communication.Response, error) {
	if req.WorkerID != s.workerID {
		// A mismatched target means the sender is using a stale placement.
		s.ls.Warn(log_service.LogEvent{
			Message:  "StoreChunk for foreign worker id rejected",
			Metadata: map[string]any{"requested": req.WorkerID, "self": s.workerID},
		})
		body, _ := json.Marshal(communication.StoreChunkResponse{
			Success: false,
			Message: "worker id mismatch",
		})
		return &communication.Response{Code: communication.CodeBadRequest, Body: body}, nil
	}

	result := communication.StoreChunkResponse{Success: true, Message: "chunk stored"}
	if err := s.cs.WriteChunk(req.FileID, req.ChunkID, req.ChunkData); err != nil {
		result = communication.StoreChunkResponse{Success: false, Message: err.Error()}
	}

	body, err := json.Marshal(result)
	if err != nil {
		return &communication.Response{Code: communication.CodeInternal}, nil
	}
	return &communication.Response{Code: communication.CodeOK, Body: body}, nil
}

func (s *WorkerServer) handleRetrieveChunk(req communication.RetrieveChunkRequest) (*communication.Response, error) {
	data, err := s.cs.ReadChunk(req.FileID, req.ChunkID)

	result := communication.RetrieveChunkResponse{ChunkData: data, Found: true}
	if err != nil {
		if !errors.Is(err, chunk_service.ErrChunkNotFound) {
			s.ls.Error(log_service.LogEvent{
				Message:  "Chunk read failed",
				Metadata: map[string]any{"fileId": req.FileID, "chunkId": req.ChunkID, "error": err.Error()},
			})
		}
		result = communication.RetrieveChunkResponse{Found: false}
	}

	body, merr := json.Marshal(result)
	if merr != nil {
		return &communication.Response{Code: communication.CodeInternal}, nil
	}
	return &communication.Response{Code: communication.CodeOK, Body: body}, nil
}
