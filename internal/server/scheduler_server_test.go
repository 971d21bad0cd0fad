package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/AnishMulay/scatterstore/internal/communication"
	"github.com/AnishMulay/scatterstore/internal/log_service"
	"github.com/AnishMulay/scatterstore/internal/metadata_service"
	"github.com/AnishMulay/scatterstore/internal/placement_service"
	"github.com/AnishMulay/scatterstore/internal/worker_registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogService struct{}

func (nopLogService) Debug(log_service.LogEvent) {}
func (nopLogService) Info(log_service.LogEvent)  {}
func (nopLogService) Warn(log_service.LogEvent)  {}
func (nopLogService) Error(log_service.LogEvent) {}

func newTestSchedulerServer() (*SchedulerServer, *worker_registry.InMemoryWorkerRegistry) {
	registry := worker_registry.NewInMemoryWorkerRegistry(5*time.Second, nopLogService{})
	ms := metadata_service.NewInMemoryMetadataService()
	placement := placement_service.NewRoundRobinPlacementService(registry, ms, nopLogService{})
	return NewSchedulerServer(nil, registry, placement, nil, nopLogService{}, DefaultReaperPeriod), registry
}

func TestSchedulerServer_HandleSendHeartbeat(t *testing.T) {
	s, registry := newTestSchedulerServer()

	resp, err := s.HandleMessage(context.Background(), communication.Message{
		From: "w1",
		Type: communication.MessageTypeSendHeartbeat,
		Payload: communication.SendHeartbeatRequest{
			WorkerID: "w1",
			Address:  "localhost:7001",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, communication.CodeOK, resp.Code)

	var ack communication.SendHeartbeatResponse
	require.NoError(t, json.Unmarshal(resp.Body, &ack))
	assert.True(t, ack.Acknowledged)

	active := registry.Active(time.Now())
	require.Len(t, active, 1)
	assert.Equal(t, "localhost:7001", active[0].Address)
}

func TestSchedulerServer_HandleSendHeartbeatMissingFields(t *testing.T) {
	s, _ := newTestSchedulerServer()

	resp, err := s.HandleMessage(context.Background(), communication.Message{
		From:    "w1",
		Type:    communication.MessageTypeSendHeartbeat,
		Payload: communication.SendHeartbeatRequest{WorkerID: "w1"},
	})
	require.NoError(t, err)
	assert.Equal(t, communication.CodeBadRequest, resp.Code)
}

func TestSchedulerServer_HandleAssignWorkerForChunk(t *testing.T) {
	s, registry := newTestSchedulerServer()
	registry.Upsert("w1", "localhost:7001")

	req := communication.Message{
		From: "w1",
		Type: communication.MessageTypeAssignWorkerForChunk,
		Payload: communication.AssignWorkerForChunkRequest{
			RequesterWorkerID: "w1",
			FileID:            "f1",
			ChunkID:           0,
		},
	}

	resp, err := s.HandleMessage(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, communication.CodeOK, resp.Code)

	var placement communication.AssignWorkerForChunkResponse
	require.NoError(t, json.Unmarshal(resp.Body, &placement))
	assert.Equal(t, "w1", placement.AssignedWorkerID)
	assert.Equal(t, "localhost:7001", placement.AssignedWorkerAddress)

	// The same chunk again is the idempotent path; the recorded placement
	// rides along on the failure response.
	resp, err = s.HandleMessage(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, communication.CodeAlreadyExists, resp.Code)

	var existing communication.AssignWorkerForChunkResponse
	require.NoError(t, json.Unmarshal(resp.Body, &existing))
	assert.Equal(t, placement, existing)
}

func TestSchedulerServer_HandleAssignWorkerForChunkNoWorkers(t *testing.T) {
	s, _ := newTestSchedulerServer()

	resp, err := s.HandleMessage(context.Background(), communication.Message{
		From: "w1",
		Type: communication.MessageTypeAssignWorkerForChunk,
		Payload: communication.AssignWorkerForChunkRequest{
			RequesterWorkerID: "w1",
			FileID:            "f1",
			ChunkID:           0,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, communication.CodeUnavailable, resp.Code)
}

func TestSchedulerServer_HandleUnknownMessageType(t *testing.T) {
	s, _ := newTestSchedulerServer()

	resp, err := s.HandleMessage(context.Background(), communication.Message{
		From: "w1",
		Type: "Bogus",
	})
	require.NoError(t, err)
	assert.Equal(t, communication.CodeBadRequest, resp.Code)
}
