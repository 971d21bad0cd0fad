package consumer_service

import (
	"context"
	"encoding/json"

	"github.com/AnishMulay/scatterstore/internal/chunk_queue"
	"github.com/AnishMulay/scatterstore/internal/chunk_service"
	"github.com/AnishMulay/scatterstore/internal/communication"
	"github.com/AnishMulay/scatterstore/internal/log_service"
)

// ChunkTaskConsumer drains the chunk queue on a worker. For every message it
// asks the scheduler for a placement, then stores the chunk locally or
// forwards it to the assigned peer. Acks happen only after a successful
// store; transient failures nack with requeue.
type ChunkTaskConsumer struct {
	consumer         chunk_queue.ChunkConsumer
	comm             communication.Communicator
	cs               chunk_service.ChunkService
	ls               log_service.LogService
	workerID         string
	schedulerAddress string
}

func NewChunkTaskConsumer(consumer chunk_queue.ChunkConsumer, comm communication.Communicator, cs chunk_service.ChunkService, ls log_service.LogService, workerID string, schedulerAddress string) *ChunkTaskConsumer {
	return &ChunkTaskConsumer{
		consumer:         consumer,
		comm:             comm,
		cs:               cs,
		ls:               ls,
		workerID:         workerID,
		schedulerAddress: schedulerAddress,
	}
}

func (c *ChunkTaskConsumer) Start() error {
	return c.consumer.Start(c.HandleDelivery)
}

func (c *ChunkTaskConsumer) Stop() error {
	return c.consumer.Stop()
}

// HandleDelivery processes one queue delivery end to end.
func (c *ChunkTaskConsumer) HandleDelivery(ctx context.Context, delivery chunk_queue.Delivery) {
	var msg chunk_queue.ChunkMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		// Poison message; redelivery cannot make it parseable.
		c.ls.Warn(log_service.LogEvent{
			Message:  "Dropping malformed chunk message",
			Metadata: map[string]any{"error": err.Error()},
		})
		_ = delivery.Ack()
		return
	}

	placement, ok := c.assignWorker(ctx, msg)
	if !ok {
		_ = delivery.Nack(true)
		return
	}

	if placement.AssignedWorkerID == c.workerID {
		if err := c.cs.WriteChunk(msg.FileID, msg.ChunkID, msg.Data); err != nil {
			c.ls.Error(log_service.LogEvent{
				Message:  "Local chunk store failed",
				Metadata: map[string]any{"fileId": msg.FileID, "chunkId": msg.ChunkID, "error": err.Error()},
			})
			_ = delivery.Nack(true)
			return
		}
	} else {
		if !c.forwardChunk(ctx, msg, placement) {
			_ = delivery.Nack(true)
			return
		}
	}

	_ = delivery.Ack()
}

// assignWorker asks the scheduler for a placement. The already-assigned
// response is the redelivery path: the recorded decision is honored as-is.
func (c *ChunkTaskConsumer) assignWorker(ctx context.Context, msg chunk_queue.ChunkMessage) (communication.AssignWorkerForChunkResponse, bool) {
	var placement communication.AssignWorkerForChunkResponse

	resp, err := c.comm.Send(ctx, c.schedulerAddress, communication.Message{
		From: c.workerID,
		Type: communication.MessageTypeAssignWorkerForChunk,
		Payload: communication.AssignWorkerForChunkRequest{
			RequesterWorkerID: c.workerID,
			FileID:            msg.FileID,
			ChunkID:           msg.ChunkID,
		},
	})
	if err != nil {
		c.ls.Error(log_service.LogEvent{
			Message:  "Placement request failed",
			Metadata: map[string]any{"fileId": msg.FileID, "chunkId": msg.ChunkID, "error": err.Error()},
		})
		return placement, false
	}

	switch resp.Code {
	case communication.CodeOK, communication.CodeAlreadyExists:
		if err := json.Unmarshal(resp.Body, &placement); err != nil {
			c.ls.Error(log_service.LogEvent{
				Message:  "Malformed placement response",
				Metadata: map[string]any{"fileId": msg.FileID, "chunkId": msg.ChunkID, "error": err.Error()},
			})
			return placement, false
		}
		return placement, true
	case communication.CodeUnavailable:
		// Registry may not yet reflect recently-heartbeated peers.
		c.ls.Warn(log_service.LogEvent{
			Message:  "No active workers, requeueing chunk",
			Metadata: map[string]any{"fileId": msg.FileID, "chunkId": msg.ChunkID},
		})
		return placement, false
	default:
		c.ls.Error(log_service.LogEvent{
			Message:  "Unexpected placement response code",
			Metadata: map[string]any{"fileId": msg.FileID, "chunkId": msg.ChunkID, "code": string(resp.Code)},
		})
		return placement, false
	}
}

func (c *ChunkTaskConsumer) forwardChunk(ctx context.Context, msg chunk_queue.ChunkMessage, placement communication.AssignWorkerForChunkResponse) bool {
	resp, err := c.comm.Send(ctx, placement.AssignedWorkerAddress, communication.Message{
		From: c.workerID,
		Type: communication.MessageTypeStoreChunk,
		Payload: communication.StoreChunkRequest{
			WorkerID:  placement.AssignedWorkerID,
			FileID:    msg.FileID,
			ChunkID:   msg.ChunkID,
			ChunkData: msg.Data,
		},
	})
	if err != nil {
		c.ls.Error(log_service.LogEvent{
			Message:  "Peer store failed",
			Metadata: map[string]any{"fileId": msg.FileID, "chunkId": msg.ChunkID, "peer": placement.AssignedWorkerID, "error": err.Error()},
		})
		return false
	}
	if resp.Code != communication.CodeOK {
		c.ls.Error(log_service.LogEvent{
			Message:  "Peer rejected chunk",
			Metadata: map[string]any{"fileId": msg.FileID, "chunkId": msg.ChunkID, "peer": placement.AssignedWorkerID, "code": string(resp.Code)},
		})
		return false
	}

	var stored communication.StoreChunkResponse
	if err := json.Unmarshal(resp.Body, &stored); err != nil || !stored.Success {
		c.ls.Error(log_service.LogEvent{
			Message:  "Peer store unsuccessful",
			Metadata: map[string]any{"fileId": msg.FileID, "chunkId": msg.ChunkID, "peer": placement.AssignedWorkerID},
		})
		return false
	}

	c.ls.Debug(log_service.LogEvent{
		Message:  "Chunk forwarded to peer",
		Metadata: map[string]any{"fileId": msg.FileID, "chunkId": msg.ChunkID, "peer": placement.AssignedWorkerID},
	})
	return true
}
