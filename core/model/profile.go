package model

import "fmt"

// Manufacturer identifies one of the fixed vehicle types. It is a tag, not a
// behavioral hierarchy: vehicles differ only by their profile constants.
type Manufacturer int

const (
	Alpha Manufacturer = iota
	Bravo
	Charlie
	Delta
	Echo

	// NumManufacturers is the number of distinct vehicle types.
	NumManufacturers int = iota
)

func (m Manufacturer) String() string {
	switch m {
	case Alpha:
		return "Alpha"
	case Bravo:
		return "Bravo"
	case Charlie:
		return "Charlie"
	case Delta:
		return "Delta"
	case Echo:
		return "Echo"
	default:
		return fmt.Sprintf("Manufacturer(%d)", int(m))
	}
}

// VehicleProfile holds the immutable performance constants of one vehicle type.
type VehicleProfile struct {
	Manufacturer     Manufacturer `json:"manufacturer"`
	CruiseSpeedMPH   float64      `json:"cruise_speed_mph"`
	BatteryKWh       float64      `json:"battery_kwh"`
	ChargeTimeHours  float64      `json:"charge_time_hours"`
	EnergyPerMileKWh float64      `json:"energy_per_mile_kwh"`
	PassengerCount   int          `json:"passenger_count"`
	// FaultPerHour is the probability of an in-flight fault per flight hour.
	FaultPerHour float64 `json:"fault_per_hour"`
}

// ChargeRateKW returns the charging power implied by capacity and charge time.
func (p VehicleProfile) ChargeRateKW() float64 {
	return p.BatteryKWh / p.ChargeTimeHours
}

// CruiseConsumptionKW returns the power draw at cruise speed.
func (p VehicleProfile) CruiseConsumptionKW() float64 {
	// [kWh/mile] * [mile/hour] = [kW]
	return p.EnergyPerMileKWh * p.CruiseSpeedMPH
}

var profiles = [NumManufacturers]VehicleProfile{
	{Manufacturer: Alpha, CruiseSpeedMPH: 120, BatteryKWh: 320, ChargeTimeHours: 0.6, EnergyPerMileKWh: 1.6, PassengerCount: 4, FaultPerHour: 0.25},
	{Manufacturer: Bravo, CruiseSpeedMPH: 100, BatteryKWh: 100, ChargeTimeHours: 0.2, EnergyPerMileKWh: 1.5, PassengerCount: 5, FaultPerHour: 0.10},
	{Manufacturer: Charlie, CruiseSpeedMPH: 160, BatteryKWh: 220, ChargeTimeHours: 0.8, EnergyPerMileKWh: 2.2, PassengerCount: 3, FaultPerHour: 0.05},
	{Manufacturer: Delta, CruiseSpeedMPH: 90, BatteryKWh: 120, ChargeTimeHours: 0.62, EnergyPerMileKWh: 0.8, PassengerCount: 2, FaultPerHour: 0.22},
	{Manufacturer: Echo, CruiseSpeedMPH: 30, BatteryKWh: 150, ChargeTimeHours: 0.3, EnergyPerMileKWh: 5.8, PassengerCount: 2, FaultPerHour: 0.61},
}

// Profile returns the profile table entry for the given manufacturer.
func Profile(m Manufacturer) (VehicleProfile, error) {
	if m < 0 || int(m) >= NumManufacturers {
		return VehicleProfile{}, fmt.Errorf("unknown manufacturer %d", int(m))
	}
	return profiles[m], nil
}

// Profiles returns a copy of the full profile table.
func Profiles() []VehicleProfile {
	out := make([]VehicleProfile, NumManufacturers)
	copy(out, profiles[:])
	return out
}
