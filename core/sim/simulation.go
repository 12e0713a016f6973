package sim

import (
	"context"
	"math"

	"github.com/m-aleem/eVTOL-sim/core/logger"
	"github.com/m-aleem/eVTOL-sim/core/model"
	"github.com/m-aleem/eVTOL-sim/core/rng"
)

const secondsPerHour = 3600.0

// TickObserver receives a snapshot after every completed tick. The snapshot is
// a value copy; observers must not assume any way to reach live state through
// it. A nil observer is allowed.
type TickObserver interface {
	ObserveTick(snap model.FleetSnapshot)
}

// Simulation owns the fleet and the charger pool and advances them in fixed
// discrete time slices until the configured duration elapses. It is
// single-threaded: vehicles are processed sequentially in fleet order and
// nothing outside the tick sequence mutates them.
type Simulation struct {
	cfg Config
	rng rng.Source
	log logger.Logger

	vehicles  []*Vehicle
	lastState []model.State
	pool      *ChargerPool
	typeStats map[model.Manufacturer]*model.TypeStats

	current float64 // simulated time in hours
	step    int
	obs     TickObserver
}

// New builds a simulation from the configuration, creating the fleet and the
// charger pool. The random source is used both for manufacturer assignment (in
// random mode) and for in-flight fault trials.
func New(cfg Config, src rng.Source, log logger.Logger, obs TickObserver) (*Simulation, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = nopLogger{}
	}

	s := &Simulation{
		cfg:       cfg,
		rng:       src,
		log:       log,
		pool:      NewChargerPool(cfg.Chargers),
		typeStats: make(map[model.Manufacturer]*model.TypeStats),
		obs:       obs,
	}
	s.buildFleet()
	return s, nil
}

func (s *Simulation) buildFleet() {
	s.vehicles = make([]*Vehicle, 0, s.cfg.Vehicles)
	s.lastState = make([]model.State, s.cfg.Vehicles)

	for i := 0; i < s.cfg.Vehicles; i++ {
		var m model.Manufacturer
		if s.cfg.Assignment == AssignEqual {
			m = model.Manufacturer(i % model.NumManufacturers)
		} else {
			m = model.Manufacturer(s.rng.UniformInt(0, model.NumManufacturers-1))
		}
		profile, err := model.Profile(m)
		if err != nil {
			// m comes from the bounded draws above; reaching this is a bug.
			panic(err)
		}
		v := NewVehicle(i+1, profile, s.rng)
		s.vehicles = append(s.vehicles, v)
		s.lastState[i] = v.State()

		ts := s.typeStatsFor(m)
		ts.VehicleCount++
	}

	for _, ts := range s.typeStats {
		s.log.Debugw("fleet composition", map[string]any{
			"manufacturer": ts.Manufacturer.String(),
			"count":        ts.VehicleCount,
		})
	}
}

func (s *Simulation) typeStatsFor(m model.Manufacturer) *model.TypeStats {
	ts, ok := s.typeStats[m]
	if !ok {
		ts = &model.TypeStats{Manufacturer: m}
		s.typeStats[m] = ts
	}
	return ts
}

// Run drives the simulation to completion. It returns early only when the
// context is canceled between ticks.
func (s *Simulation) Run(ctx context.Context) error {
	s.log.Infof("starting simulation: %d vehicles, %v hours, %d chargers, %vs tick",
		s.cfg.Vehicles, s.cfg.Hours, s.cfg.Chargers, s.cfg.TickSeconds)

	for s.current < s.cfg.Hours {
		if err := ctx.Err(); err != nil {
			return err
		}
		dt := s.nextTick()
		s.stepOnce(dt)
		if s.obs != nil {
			s.obs.ObserveTick(s.Snapshot())
		}
	}

	s.log.Infof("simulation complete: %d steps, %.4f hours", s.step, s.current)
	return nil
}

// nextTick clamps the tick size to the remaining duration so the final tick
// never overruns the configured hours.
func (s *Simulation) nextTick() float64 {
	return math.Min(s.cfg.TickSeconds/secondsPerHour, s.cfg.Hours-s.current)
}

// stepOnce runs one tick: free chargers whose occupant stopped charging,
// advance every vehicle and fold its step stats into the per-type aggregate,
// enqueue newly depleted vehicles and assign free chargers, advance the clock.
func (s *Simulation) stepOnce(dt float64) {
	s.pool.Release()

	for i, v := range s.vehicles {
		v.UpdateState(dt)
		s.accumulate(i, v)
		s.log.Debugf("step %d vehicle %d %s: state=%s battery=%.2fkWh",
			s.step+1, v.ID(), v.Profile().Manufacturer, v.State(), v.BatteryKWh())
	}

	for _, v := range s.vehicles {
		if v.State() == model.StateQueued {
			s.pool.Enqueue(v)
		}
	}
	s.pool.Assign()

	// Assign flips vehicles Queued→Charging after accumulate sampled their
	// state; refresh so the next tick's edge detection compares against
	// Charging and a session that completes within one tick still counts.
	for i, v := range s.vehicles {
		s.lastState[i] = v.State()
	}

	s.current += dt
	s.step++
}

// accumulate folds the vehicle's step stats into its manufacturer's rollup and
// counts flight/charge completions by comparing state across the tick, so a
// flight spanning many ticks counts once.
func (s *Simulation) accumulate(i int, v *Vehicle) {
	ts := s.typeStatsFor(v.Profile().Manufacturer)
	step := v.StepStats()

	ts.FlightTime += step.FlightTime
	ts.Distance += step.DistanceTraveled
	ts.ChargingTime += step.ChargingTime
	ts.PassengerMiles += step.PassengerMiles
	ts.Faults += step.Faults

	now := v.State()
	prev := s.lastState[i]
	if prev == model.StateFlying && now != model.StateFlying {
		ts.Flights++
	} else if prev == model.StateCharging && now != model.StateCharging {
		ts.Charges++
	}
	s.lastState[i] = now
}

// CurrentTime returns the simulated time in hours.
func (s *Simulation) CurrentTime() float64 { return s.current }

// StepCount returns the number of completed ticks.
func (s *Simulation) StepCount() int { return s.step }

// Snapshot returns a read-only copy of the fleet and charger state.
func (s *Simulation) Snapshot() model.FleetSnapshot {
	snap := model.FleetSnapshot{
		Step:      s.step,
		TimeHours: s.current,
		TickHours: s.cfg.TickSeconds / secondsPerHour,
		Vehicles:  make([]model.VehicleSnapshot, len(s.vehicles)),
		Waiting:   s.pool.WaitingIDs(),
		Chargers:  s.pool.SlotIDs(),
	}
	for i, v := range s.vehicles {
		snap.Vehicles[i] = v.Snapshot()
	}
	return snap
}

// TypeStats returns the per-manufacturer rollups in manufacturer order.
func (s *Simulation) TypeStats() []model.TypeStats {
	out := make([]model.TypeStats, 0, len(s.typeStats))
	for m := model.Manufacturer(0); int(m) < model.NumManufacturers; m++ {
		if ts, ok := s.typeStats[m]; ok {
			out = append(out, *ts)
		}
	}
	return out
}

// nopLogger keeps New usable without a logger.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
