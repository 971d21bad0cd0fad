package worker_registry

import (
	"testing"
	"time"

	"github.com/AnishMulay/scatterstore/internal/log_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogService struct{}

func (nopLogService) Debug(log_service.LogEvent) {}
func (nopLogService) Info(log_service.LogEvent)  {}
func (nopLogService) Warn(log_service.LogEvent)  {}
func (nopLogService) Error(log_service.LogEvent) {}

func TestInMemoryWorkerRegistry_UpsertAndActive(t *testing.T) {
	r := NewInMemoryWorkerRegistry(5*time.Second, nopLogService{})

	r.Upsert("w1", "localhost:7001")
	r.Upsert("w2", "localhost:7002")

	active := r.Active(time.Now())
	require.Len(t, active, 2)
	assert.Equal(t, "w1", active[0].ID)
	assert.Equal(t, "localhost:7001", active[0].Address)
	assert.Equal(t, "w2", active[1].ID)
}

func TestInMemoryWorkerRegistry_UpsertOverwritesAddress(t *testing.T) {
	r := NewInMemoryWorkerRegistry(5*time.Second, nopLogService{})

	r.Upsert("w1", "localhost:7001")
	r.Upsert("w1", "otherhost:7009")

	active := r.Active(time.Now())
	require.Len(t, active, 1)
	assert.Equal(t, "otherhost:7009", active[0].Address)
}

func TestInMemoryWorkerRegistry_ActiveFiltersStaleWorkers(t *testing.T) {
	r := NewInMemoryWorkerRegistry(5*time.Second, nopLogService{})

	r.Upsert("w1", "localhost:7001")
	r.Upsert("w2", "localhost:7002")

	// w1 and w2 heartbeated "now"; ask for the view 6 seconds later.
	later := time.Now().Add(6 * time.Second)
	assert.Empty(t, r.Active(later))

	assert.Len(t, r.Active(time.Now()), 2)
}

func TestInMemoryWorkerRegistry_ActiveOrderedByJoinTime(t *testing.T) {
	r := NewInMemoryWorkerRegistry(5*time.Second, nopLogService{})

	r.Upsert("w3", "localhost:7003")
	r.Upsert("w1", "localhost:7001")
	r.Upsert("w2", "localhost:7002")

	// Refreshing a heartbeat must not change the round-robin ordering.
	r.Upsert("w3", "localhost:7003")

	active := r.Active(time.Now())
	require.Len(t, active, 3)
	assert.Equal(t, "w3", active[0].ID)
	assert.Equal(t, "w1", active[1].ID)
	assert.Equal(t, "w2", active[2].ID)
}

func TestInMemoryWorkerRegistry_Reap(t *testing.T) {
	r := NewInMemoryWorkerRegistry(5*time.Second, nopLogService{})

	r.Upsert("w1", "localhost:7001")
	r.Upsert("w2", "localhost:7002")

	reaped := r.Reap(time.Now())
	assert.Empty(t, reaped)

	reaped = r.Reap(time.Now().Add(6 * time.Second))
	assert.ElementsMatch(t, []string{"w1", "w2"}, reaped)
	assert.Empty(t, r.Active(time.Now()))
}

func TestInMemoryWorkerRegistry_HeartbeatAfterReapReregisters(t *testing.T) {
	r := NewInMemoryWorkerRegistry(5*time.Second, nopLogService{})

	r.Upsert("w1", "localhost:7001")
	r.Reap(time.Now().Add(6 * time.Second))
	require.Empty(t, r.Active(time.Now()))

	r.Upsert("w1", "localhost:7001")
	assert.Len(t, r.Active(time.Now()), 1)
}
