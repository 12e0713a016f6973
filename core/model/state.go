package model

// State describes where a vehicle sits in its operating cycle.
type State int

const (
	// StateReady means the vehicle is charged enough to depart.
	StateReady State = iota
	// StateFlying means the vehicle is in flight, draining its battery.
	StateFlying
	// StateQueued means the battery is empty and the vehicle waits for a charger.
	StateQueued
	// StateCharging means the vehicle occupies a charger slot.
	StateCharging
	// StateFaulted means the vehicle suffered an in-flight fault. No repair is
	// modeled, so the state is terminal.
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateFlying:
		return "Flying"
	case StateQueued:
		return "Queued"
	case StateCharging:
		return "Charging"
	case StateFaulted:
		return "Faulted"
	default:
		return "Unknown"
	}
}
