// Package events defines the event types carried on the internal bus between
// the simulation loop and its observers. Run summaries do not travel on the
// bus: the bus may drop events under pressure and the summary must not be
// lost, so the service records it on the sink directly after draining.
package events

import "github.com/m-aleem/eVTOL-sim/core/model"

// TickEvent is published after every completed simulation tick.
type TickEvent struct {
	Fleet model.FleetSnapshot
}
