package heartbeat_service

import (
	"context"
	"sync"
	"time"

	"github.com/AnishMulay/scatterstore/internal/communication"
	"github.com/AnishMulay/scatterstore/internal/log_service"
)

// DefaultHeartbeatPeriod keeps a worker inside the scheduler's liveness
// window, which must be at least twice this plus network slack.
const DefaultHeartbeatPeriod = 2 * time.Second

// HeartbeatService announces a worker to the scheduler on a fixed period.
// Send failures are logged and the loop keeps going; the registry treats a
// late heartbeat after reaping as a fresh registration.
type HeartbeatService struct {
	comm             communication.Communicator
	ls               log_service.LogService
	workerID         string
	address          string
	schedulerAddress string
	period           time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewHeartbeatService(comm communication.Communicator, ls log_service.LogService, workerID string, address string, schedulerAddress string, period time.Duration) *HeartbeatService {
	if period <= 0 {
		period = DefaultHeartbeatPeriod
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &HeartbeatService{
		comm:             comm,
		ls:               ls,
		workerID:         workerID,
		address:          address,
		schedulerAddress: schedulerAddress,
		period:           period,
		ctx:              ctx,
		cancel:           cancel,
	}
}

func (hs *HeartbeatService) Start() {
	hs.wg.Add(1)
	go func() {
		defer hs.wg.Done()

		hs.beat()
		ticker := time.NewTicker(hs.period)
		defer ticker.Stop()

		for {
			select {
			case <-hs.ctx.Done():
				return
			case <-ticker.C:
				hs.beat()
			}
		}
	}()

	hs.ls.Info(log_service.LogEvent{
		Message:  "Heartbeat loop started",
		Metadata: map[string]any{"workerId": hs.workerID, "period": hs.period.String()},
	})
}

func (hs *HeartbeatService) Stop() {
	hs.cancel()
	hs.wg.Wait()
}

func (hs *HeartbeatService) beat() {
	_, err := hs.comm.Send(hs.ctx, hs.schedulerAddress, communication.Message{
		From: hs.workerID,
		Type: communication.MessageTypeSendHeartbeat,
		Payload: communication.SendHeartbeatRequest{
			WorkerID: hs.workerID,
			Address:  hs.address,
		},
	})
	if err != nil {
		hs.ls.Warn(log_service.LogEvent{
			Message:  "Heartbeat send failed",
			Metadata: map[string]any{"workerId": hs.workerID, "error": err.Error()},
		})
	}
}
