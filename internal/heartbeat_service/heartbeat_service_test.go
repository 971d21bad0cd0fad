package heartbeat_service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/AnishMulay/scatterstore/internal/communication"
	"github.com/AnishMulay/scatterstore/internal/log_service"
)

type nopLogService struct{}

func (nopLogService) Debug(log_service.LogEvent) {}
func (nopLogService) Info(log_service.LogEvent)  {}
func (nopLogService) Warn(log_service.LogEvent)  {}
func (nopLogService) Error(log_service.LogEvent) {}

type countingComm struct {
	mu    sync.Mutex
	beats []communication.SendHeartbeatRequest
	to    []string
}

func (c *countingComm) Start(handler communication.MessageHandler) error { return nil }
func (c *countingComm) Stop() error                                      { return nil }
func (c *countingComm) Address() string                                  { return "fake" }

func (c *countingComm) Send(ctx context.Context, to string, msg communication.Message) (*communication.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if req, ok := msg.Payload.(communication.SendHeartbeatRequest); ok {
		c.beats = append(c.beats, req)
		c.to = append(c.to, to)
	}
	return &communication.Response{Code: communication.CodeOK}, nil
}

func (c *countingComm) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.beats)
}

func TestHeartbeatService_SendsPeriodicHeartbeats(t *testing.T) {
	comm := &countingComm{}
	hs := NewHeartbeatService(comm, nopLogService{}, "w1", "localhost:7001", "localhost:6000", 10*time.Millisecond)

	hs.Start()
	time.Sleep(55 * time.Millisecond)
	hs.Stop()

	if got := comm.count(); got < 2 {
		t.Errorf("expected at least 2 heartbeats, got %d", got)
	}

	comm.mu.Lock()
	defer comm.mu.Unlock()
	beat := comm.beats[0]
	if beat.WorkerID != "w1" || beat.Address != "localhost:7001" {
		t.Errorf("unexpected heartbeat payload: %+v", beat)
	}
	if comm.to[0] != "localhost:6000" {
		t.Errorf("heartbeat sent to %s, want scheduler", comm.to[0])
	}
}

func TestHeartbeatService_StopTerminatesLoop(t *testing.T) {
	comm := &countingComm{}
	hs := NewHeartbeatService(comm, nopLogService{}, "w1", "localhost:7001", "localhost:6000", 10*time.Millisecond)

	hs.Start()
	hs.Stop()

	settled := comm.count()
	time.Sleep(30 * time.Millisecond)
	if got := comm.count(); got != settled {
		t.Errorf("heartbeats kept flowing after Stop: %d -> %d", settled, got)
	}
}
