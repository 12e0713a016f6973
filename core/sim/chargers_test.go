package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-aleem/eVTOL-sim/core/model"
)

func newQueuedVehicle(t *testing.T, id int) *Vehicle {
	t.Helper()
	profile, err := model.Profile(model.Alpha)
	require.NoError(t, err)
	v := NewVehicle(id, profile, fixedSource{})
	v.UpdateState(v.MaxFlightTime())
	require.Equal(t, model.StateQueued, v.State())
	return v
}

func TestChargerPoolFIFOOrder(t *testing.T) {
	pool := NewChargerPool(1)
	v1 := newQueuedVehicle(t, 1)
	v2 := newQueuedVehicle(t, 2)
	v3 := newQueuedVehicle(t, 3)

	pool.Enqueue(v1)
	pool.Enqueue(v2)
	pool.Enqueue(v3)
	assert.Equal(t, []int{1, 2, 3}, pool.WaitingIDs())

	assert.Equal(t, 1, pool.Assign())
	assert.Equal(t, []int{1}, pool.SlotIDs())
	assert.Equal(t, []int{2, 3}, pool.WaitingIDs())
	assert.Equal(t, model.StateCharging, v1.State())
	assert.Equal(t, model.StateQueued, v2.State())

	// Finish v1 and free the slot; v2 must charge before v3.
	v1.UpdateState(v1.Profile().ChargeTimeHours)
	pool.Release()
	assert.Equal(t, 1, pool.Assign())
	assert.Equal(t, []int{2}, pool.SlotIDs())
	assert.Equal(t, model.StateCharging, v2.State())
	assert.Equal(t, []int{3}, pool.WaitingIDs())
}

func TestChargerPoolEnqueueDeduplicates(t *testing.T) {
	pool := NewChargerPool(2)
	v := newQueuedVehicle(t, 7)

	assert.True(t, pool.Enqueue(v))
	assert.False(t, pool.Enqueue(v))
	assert.Equal(t, []int{7}, pool.WaitingIDs())
}

func TestChargerPoolVehicleNeverInQueueAndSlot(t *testing.T) {
	pool := NewChargerPool(2)
	v := newQueuedVehicle(t, 5)

	pool.Enqueue(v)
	pool.Assign()
	assert.Equal(t, []int{5, 0}, pool.SlotIDs())
	assert.Empty(t, pool.WaitingIDs())

	// An assigned vehicle is Charging, so a stray re-enqueue attempt would be a
	// caller bug; the dedup set no longer holds it, but Assign drops it again.
	assert.True(t, pool.Enqueue(v))
	assert.Equal(t, 0, pool.Assign())
	assert.Empty(t, pool.WaitingIDs())
	assert.Equal(t, []int{5, 0}, pool.SlotIDs())
}

func TestChargerPoolReleaseKeepsChargingVehicles(t *testing.T) {
	pool := NewChargerPool(2)
	v1 := newQueuedVehicle(t, 1)
	v2 := newQueuedVehicle(t, 2)
	pool.Enqueue(v1)
	pool.Enqueue(v2)
	require.Equal(t, 2, pool.Assign())

	// v1 finishes its charge, v2 is still going.
	v1.UpdateState(v1.Profile().ChargeTimeHours)
	v2.UpdateState(v2.Profile().ChargeTimeHours / 2)

	pool.Release()
	assert.Equal(t, []int{0, 2}, pool.SlotIDs())
}

func TestChargerPoolAssignFillsFreeSlotsInOrder(t *testing.T) {
	pool := NewChargerPool(3)
	for id := 1; id <= 3; id++ {
		pool.Enqueue(newQueuedVehicle(t, id))
	}
	require.Equal(t, 3, pool.Assign())
	assert.Equal(t, []int{1, 2, 3}, pool.SlotIDs())

	// Free the middle slot only; the next vehicle lands there.
	v2 := pool.slots[1]
	v2.UpdateState(v2.Profile().ChargeTimeHours)
	pool.Release()

	v4 := newQueuedVehicle(t, 4)
	pool.Enqueue(v4)
	assert.Equal(t, 1, pool.Assign())
	assert.Equal(t, []int{1, 4, 3}, pool.SlotIDs())
}

func TestChargerPoolAssignWithEmptyQueue(t *testing.T) {
	pool := NewChargerPool(3)
	assert.Equal(t, 0, pool.Assign())
	assert.Equal(t, []int{0, 0, 0}, pool.SlotIDs())
}

func TestChargerPoolSize(t *testing.T) {
	assert.Equal(t, 3, NewChargerPool(3).Size())
	assert.Equal(t, 0, NewChargerPool(0).Size())
}
