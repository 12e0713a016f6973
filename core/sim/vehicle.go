package sim

import (
	"fmt"
	"math"

	"github.com/m-aleem/eVTOL-sim/core/model"
	"github.com/m-aleem/eVTOL-sim/core/rng"
)

// epsilon absorbs floating-point undershoot when deciding a battery is empty.
const epsilon = 1e-10

// StateError reports a state-machine call made out of protocol. It signals a
// bug in the driving code, so it is delivered by panic rather than returned.
type StateError struct {
	Op   string
	Have model.State
	Want model.State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("sim: %s requires state %s, vehicle is %s", e.Op, e.Want, e.Have)
}

// Vehicle is one aircraft instance: a profile, a battery, a state and two
// statistics scopes. It is not safe for concurrent use; the Simulation owns it
// and drives it sequentially.
type Vehicle struct {
	id      int
	profile model.VehicleProfile
	rng     rng.Source

	state   model.State
	battery float64 // kWh, clamped to [0, profile.BatteryKWh]

	step  model.VehicleStats
	total model.VehicleStats
}

// NewVehicle creates a vehicle in the Ready state with a full battery.
func NewVehicle(id int, profile model.VehicleProfile, src rng.Source) *Vehicle {
	return &Vehicle{
		id:      id,
		profile: profile,
		rng:     src,
		state:   model.StateReady,
		battery: profile.BatteryKWh,
	}
}

func (v *Vehicle) ID() int                       { return v.id }
func (v *Vehicle) Profile() model.VehicleProfile { return v.profile }
func (v *Vehicle) State() model.State            { return v.state }
func (v *Vehicle) BatteryKWh() float64           { return v.battery }

// StepStats returns the statistics accrued by the most recent UpdateState call.
func (v *Vehicle) StepStats() model.VehicleStats { return v.step }

// TotalStats returns the statistics accrued since creation.
func (v *Vehicle) TotalStats() model.VehicleStats { return v.total }

// MaxFlightTime returns how long the current battery sustains cruise flight.
func (v *Vehicle) MaxFlightTime() float64 {
	return v.battery / v.profile.CruiseConsumptionKW()
}

// setBattery clamps writes into [0, capacity]. Marginal over/undershoot from
// floating-point arithmetic is a tolerance concern, not an error.
func (v *Vehicle) setBattery(kwh float64) {
	if kwh < 0 {
		kwh = 0
	}
	if kwh > v.profile.BatteryKWh {
		kwh = v.profile.BatteryKWh
	}
	v.battery = kwh
}

// UpdateState advances the vehicle by one tick of the given duration in hours.
// Step stats are reset once on entry and folded into the totals once on exit,
// so after the call StepStats holds exactly this tick's contribution.
//
// The loop consumes the remaining time through fly/charge or direct accrual
// and re-enters only on automatic transitions (Ready→Flying, Charging→Ready),
// which consume no time themselves.
func (v *Vehicle) UpdateState(hours float64) {
	v.step.Reset()
	remaining := hours

	for again := true; again; {
		again = false

		switch v.state {
		case model.StateReady:
			if v.battery > 0 {
				v.state = model.StateFlying
				again = true
			}

		case model.StateFlying:
			if remaining > 0 {
				used := v.fly(remaining)
				remaining -= used
				switch v.state {
				case model.StateQueued:
					// Battery ran out mid-tick; the rest of the tick is spent waiting.
					if remaining > 0 {
						v.step.QueuedTime += remaining
						remaining = 0
					}
				case model.StateFaulted:
					// The remainder of the tick after the fault point is lost to the fault.
					v.step.FaultedTime += remaining
					remaining = 0
				}
			}

		case model.StateCharging:
			if remaining > 0 {
				used := v.charge(remaining)
				remaining -= used
				if v.state == model.StateReady {
					again = true
				}
			} else if v.battery >= v.profile.BatteryKWh {
				v.setBattery(v.profile.BatteryKWh)
				v.state = model.StateReady
				again = true
			}

		case model.StateQueued:
			if remaining > 0 {
				v.step.QueuedTime += remaining
				remaining = 0
			}

		case model.StateFaulted:
			v.step.FaultedTime += remaining
			remaining = 0
		}
	}

	v.total.Add(v.step)
}

// fly consumes up to hours of flight, limited by the energy left in the
// battery. A fault trial covers only the time actually flyable; on a fault the
// vehicle is assumed to go down at the midpoint of that interval, so stats and
// battery are debited for half of it and the half is returned as consumed.
// Returns the flight time consumed.
func (v *Vehicle) fly(hours float64) float64 {
	if v.state != model.StateFlying {
		panic(&StateError{Op: "fly", Have: v.state, Want: model.StateFlying})
	}
	if hours <= 0 {
		return 0
	}

	actual := math.Min(hours, v.MaxFlightTime())

	if actual > 0 && v.rng.Bernoulli(v.profile.FaultPerHour*actual) {
		half := actual / 2
		v.accrueFlight(half)
		v.step.Faults++
		v.state = model.StateFaulted
		return half
	}

	v.accrueFlight(actual)
	if v.battery <= epsilon {
		v.battery = 0
		v.state = model.StateQueued
	}
	return actual
}

// accrueFlight books hours of cruise flight into step stats and the battery.
func (v *Vehicle) accrueFlight(hours float64) {
	distance := v.profile.CruiseSpeedMPH * hours
	v.step.FlightTime += hours
	v.step.DistanceTraveled += distance
	v.step.PassengerMiles += distance * float64(v.profile.PassengerCount)
	v.setBattery(v.battery - distance*v.profile.EnergyPerMileKWh)
}

// StartCharging moves a queued vehicle onto a charger. Calling it in any other
// state is a protocol violation by the charger pool and panics.
func (v *Vehicle) StartCharging() {
	if v.state != model.StateQueued {
		panic(&StateError{Op: "StartCharging", Have: v.state, Want: model.StateQueued})
	}
	v.state = model.StateCharging
}

// charge adds energy for up to hours at the profile's charge rate and returns
// the time actually spent, which is less than hours only when the battery
// fills early. A full battery transitions the vehicle back to Ready.
func (v *Vehicle) charge(hours float64) float64 {
	if v.state != model.StateCharging {
		panic(&StateError{Op: "charge", Have: v.state, Want: model.StateCharging})
	}
	if hours <= 0 {
		return 0
	}

	rate := v.profile.ChargeRateKW()
	needed := v.profile.BatteryKWh - v.battery
	added := math.Min(needed, rate*hours)
	used := added / rate

	v.setBattery(v.battery + added)
	v.step.ChargingTime += used

	if v.battery >= v.profile.BatteryKWh {
		v.setBattery(v.profile.BatteryKWh)
		v.state = model.StateReady
	}
	return used
}

// Snapshot returns a value copy of the vehicle's observable state.
func (v *Vehicle) Snapshot() model.VehicleSnapshot {
	pct := 0.0
	if v.profile.BatteryKWh > 0 {
		pct = 100 * v.battery / v.profile.BatteryKWh
	}
	return model.VehicleSnapshot{
		ID:           v.id,
		Manufacturer: v.profile.Manufacturer,
		State:        v.state,
		BatteryKWh:   v.battery,
		BatteryPct:   pct,
		Step:         v.step,
		Total:        v.total,
	}
}
