package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/AnishMulay/scatterstore/internal/communication"
	"github.com/AnishMulay/scatterstore/internal/gateway"
	"github.com/AnishMulay/scatterstore/internal/log_service"
	"github.com/AnishMulay/scatterstore/internal/placement_service"
	"github.com/AnishMulay/scatterstore/internal/worker_registry"
)

// DefaultReaperPeriod is how often stale workers are purged.
const DefaultReaperPeriod = 5 * time.Second

// SchedulerServer owns the RPC surface workers talk to, the registry reaper,
// and the client-facing HTTP gateway.
type SchedulerServer struct {
	comm         communication.Communicator
	registry     worker_registry.WorkerRegistry
	placement    placement_service.PlacementService
	gateway      *gateway.HTTPGateway
	ls           log_service.LogService
	reaperPeriod time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSchedulerServer(comm communication.Communicator, registry worker_registry.WorkerRegistry, placement placement_service.PlacementService, gw *gateway.HTTPGateway, ls log_service.LogService, reaperPeriod time.Duration) *SchedulerServer {
	if reaperPeriod <= 0 {
		reaperPeriod = DefaultReaperPeriod
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SchedulerServer{
		comm:         comm,
		registry:     registry,
		placement:    placement,
		gateway:      gw,
		ls:           ls,
		reaperPeriod: reaperPeriod,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (s *SchedulerServer) Start() error {
	if err := s.comm.Start(s.HandleMessage); err != nil {
		return err
	}
	if s.gateway != nil {
		if err := s.gateway.Start(); err != nil {
			return err
		}
	}

	s.wg.Add(1)
	go s.reaperLoop()

	s.ls.Info(log_service.LogEvent{
		Message:  "Scheduler started",
		Metadata: map[string]any{"rpcAddress": s.comm.Address()},
	})
	return nil
}

func (s *SchedulerServer) Stop() error {
	// Ingress first so no new uploads arrive while the RPC surface drains.
	if s.gateway != nil {
		if err := s.gateway.Stop(); err != nil {
			s.ls.Warn(log_service.LogEvent{
				Message:  "Gateway stop failed",
				Metadata: map[string]any{"error": err.Error()},
			})
		}
	}

	s.cancel()
	s.wg.Wait()
	return s.comm.Stop()
}

func (s *SchedulerServer) reaperLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.reaperPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.registry.Reap(time.Now())
		}
	}
}

// HandleMessage dispatches the scheduler's two RPC operations.
func (s *SchedulerServer) HandleMessage(ctx context.Context, msg communication.Message) (*communication.Response, error) {
	switch msg.Type {
	case communication.MessageTypeSendHeartbeat:
		req, ok := msg.Payload.(communication.SendHeartbeatRequest)
		if !ok {
			return &communication.Response{Code: communication.CodeBadRequest}, nil
		}
		return s.handleSendHeartbeat(req)

	case communication.MessageTypeAssignWorkerForChunk:
		req, ok := msg.Payload.(communication.AssignWorkerForChunkRequest)
		if !ok {
			return &communication.Response{Code: communication.CodeBadRequest}, nil
		}
		return s.handleAssignWorkerForChunk(ctx, req)

	default:
		s.ls.Warn(log_service.LogEvent{
			Message:  "Unhandled message type",
			Metadata: map[string]any{"type": msg.Type, "from": msg.From},
		})
		return &communication.Response{Code: communication.CodeBadRequest}, nil
	}
}

func (s *SchedulerServer) handleSendHeartbeat(req communication.SendHeartbeatRequest) (*communication.Response, error) {
	if req.WorkerID == "" || req.Address == "" {
		return &communication.Response{Code: communication.CodeBadRequest}, nil
	}

	s.registry.Upsert(req.WorkerID, req.Address)

	body, err := json.Marshal(communication.SendHeartbeatResponse{
		Acknowledged: true,
		Message:      "heartbeat received",
	})
	if err != nil {
		return &communication.Response{Code: communication.CodeInternal}, nil
	}
	return &communication.Response{Code: communication.CodeOK, Body: body}, nil
}

func (s *SchedulerServer) handleAssignWorkerForChunk(ctx context.Context, req communication.AssignWorkerForChunkRequest) (*communication.Response, error) {
	placement, err := s.placement.AssignWorker(ctx, req.RequesterWorkerID, req.FileID, req.ChunkID)
	if err != nil {
		var already *placement_service.AlreadyAssignedError
		if errors.As(err, &already) {
			body, merr := json.Marshal(communication.AssignWorkerForChunkResponse{
				AssignedWorkerID:      already.Placement.WorkerID,
				AssignedWorkerAddress: already.Placement.WorkerAddress,
			})
			if merr != nil {
				return &communication.Response{Code: communication.CodeInternal}, nil
			}
			return &communication.Response{Code: communication.CodeAlreadyExists, Body: body}, nil
		}
		if errors.Is(err, placement_service.ErrNoActiveWorkers) {
			return &communication.Response{Code: communication.CodeUnavailable}, nil
		}
		s.ls.Error(log_service.LogEvent{
			Message:  "Placement failed",
			Metadata: map[string]any{"fileId": req.FileID, "chunkId": req.ChunkID, "error": err.Error()},
		})
		return &communication.Response{Code: communication.CodeInternal}, nil
	}

	body, err := json.Marshal(communication.AssignWorkerForChunkResponse{
		AssignedWorkerID:      placement.WorkerID,
		AssignedWorkerAddress: placement.WorkerAddress,
	})
	if err != nil {
		return &communication.Response{Code: communication.CodeInternal}, nil
	}
	return &communication.Response{Code: communication.CodeOK, Body: body}, nil
}
