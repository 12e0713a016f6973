package model

// VehicleSnapshot is a read-only view of one vehicle after a tick. Snapshots
// are value copies; holding one never aliases live simulation state.
type VehicleSnapshot struct {
	ID           int          `json:"id"`
	Manufacturer Manufacturer `json:"manufacturer"`
	State        State        `json:"state"`
	BatteryKWh   float64      `json:"battery_kwh"`
	BatteryPct   float64      `json:"battery_pct"`
	Step         VehicleStats `json:"step"`
	Total        VehicleStats `json:"total"`
}

// FleetSnapshot captures the whole fleet plus charger occupancy after a tick.
type FleetSnapshot struct {
	Step      int               `json:"step"`
	TimeHours float64           `json:"time_hours"`
	TickHours float64           `json:"tick_hours"`
	Vehicles  []VehicleSnapshot `json:"vehicles"`
	// Waiting lists vehicle IDs in FIFO charger-queue order.
	Waiting []int `json:"waiting"`
	// Chargers lists the occupant vehicle ID per slot, 0 for a free slot.
	Chargers []int `json:"chargers"`
}
