package sim

import "github.com/m-aleem/eVTOL-sim/core/model"

// ChargerPool mediates a fixed set of charger slots among depleted vehicles.
// Waiting vehicles form a strict FIFO queue; the queued set guards against
// re-enqueueing a vehicle that is already waiting. A vehicle is never in the
// queue and a slot at the same time.
type ChargerPool struct {
	slots  []*Vehicle
	queue  []*Vehicle
	queued map[int]struct{}
}

// NewChargerPool creates a pool with n empty slots.
func NewChargerPool(n int) *ChargerPool {
	return &ChargerPool{
		slots:  make([]*Vehicle, n),
		queued: make(map[int]struct{}),
	}
}

// Size returns the number of charger slots.
func (p *ChargerPool) Size() int { return len(p.slots) }

// Release frees every slot whose occupant is no longer charging. Run before
// vehicle updates so a slot freed this tick is assignable the same tick.
func (p *ChargerPool) Release() {
	for i, v := range p.slots {
		if v != nil && v.State() != model.StateCharging {
			p.slots[i] = nil
		}
	}
}

// Enqueue appends v to the wait queue unless it is already waiting. It reports
// whether the vehicle was added.
func (p *ChargerPool) Enqueue(v *Vehicle) bool {
	if _, ok := p.queued[v.ID()]; ok {
		return false
	}
	p.queue = append(p.queue, v)
	p.queued[v.ID()] = struct{}{}
	return true
}

// Assign fills free slots in slot-index order from the front of the queue,
// starting each assigned vehicle charging. A popped vehicle that is no longer
// Queued is dropped rather than assigned; state should not change between
// enqueue and assignment within a tick, so the check is defensive. Returns the
// number of vehicles assigned.
func (p *ChargerPool) Assign() int {
	assigned := 0
	for i := range p.slots {
		if len(p.queue) == 0 {
			break
		}
		if p.slots[i] != nil {
			continue
		}
		v := p.queue[0]
		p.queue = p.queue[1:]
		delete(p.queued, v.ID())

		if v.State() != model.StateQueued {
			continue
		}
		p.slots[i] = v
		v.StartCharging()
		assigned++
	}
	return assigned
}

// WaitingIDs returns the queued vehicle IDs in FIFO order.
func (p *ChargerPool) WaitingIDs() []int {
	ids := make([]int, len(p.queue))
	for i, v := range p.queue {
		ids[i] = v.ID()
	}
	return ids
}

// SlotIDs returns the occupant vehicle ID per slot, 0 for a free slot.
func (p *ChargerPool) SlotIDs() []int {
	ids := make([]int, len(p.slots))
	for i, v := range p.slots {
		if v != nil {
			ids[i] = v.ID()
		}
	}
	return ids
}
