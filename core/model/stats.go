package model

// VehicleStats accumulates per-vehicle activity. The same struct serves two
// scopes: step stats covering a single tick and total stats covering the whole
// run. Times are in hours, distances in miles.
type VehicleStats struct {
	FlightTime       float64 `json:"flight_time"`
	QueuedTime       float64 `json:"queued_time"`
	ChargingTime     float64 `json:"charging_time"`
	FaultedTime      float64 `json:"faulted_time"`
	DistanceTraveled float64 `json:"distance_traveled"`
	PassengerMiles   float64 `json:"passenger_miles"`
	Faults           int     `json:"faults"`
}

// Reset zeroes all fields.
func (s *VehicleStats) Reset() {
	*s = VehicleStats{}
}

// Add accumulates other into s.
func (s *VehicleStats) Add(other VehicleStats) {
	s.FlightTime += other.FlightTime
	s.QueuedTime += other.QueuedTime
	s.ChargingTime += other.ChargingTime
	s.FaultedTime += other.FaultedTime
	s.DistanceTraveled += other.DistanceTraveled
	s.PassengerMiles += other.PassengerMiles
	s.Faults += other.Faults
}

// TotalTime returns the summed time across all activity buckets.
func (s VehicleStats) TotalTime() float64 {
	return s.FlightTime + s.QueuedTime + s.ChargingTime + s.FaultedTime
}

// TypeStats rolls up activity for all vehicles of one manufacturer. Averages
// are derived on demand rather than stored.
type TypeStats struct {
	Manufacturer   Manufacturer `json:"manufacturer"`
	VehicleCount   int          `json:"vehicle_count"`
	Flights        int          `json:"flights"`
	Charges        int          `json:"charges"`
	FlightTime     float64      `json:"flight_time"`
	Distance       float64      `json:"distance"`
	ChargingTime   float64      `json:"charging_time"`
	PassengerMiles float64      `json:"passenger_miles"`
	Faults         int          `json:"faults"`
}

// AvgFlightTimePerFlight returns the mean duration of a flight.
func (s TypeStats) AvgFlightTimePerFlight() float64 {
	if s.Flights == 0 {
		return 0
	}
	return s.FlightTime / float64(s.Flights)
}

// AvgDistancePerFlight returns the mean distance of a flight.
func (s TypeStats) AvgDistancePerFlight() float64 {
	if s.Flights == 0 {
		return 0
	}
	return s.Distance / float64(s.Flights)
}

// AvgChargingTimePerSession returns the mean duration of a charging session.
func (s TypeStats) AvgChargingTimePerSession() float64 {
	if s.Charges == 0 {
		return 0
	}
	return s.ChargingTime / float64(s.Charges)
}

// FaultRate returns faults per vehicle of this type.
func (s TypeStats) FaultRate() float64 {
	if s.VehicleCount == 0 {
		return 0
	}
	return float64(s.Faults) / float64(s.VehicleCount)
}
