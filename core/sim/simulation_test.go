package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-aleem/eVTOL-sim/core/model"
	"github.com/m-aleem/eVTOL-sim/core/rng"
)

func TestSimulationDefaults(t *testing.T) {
	s, err := New(Config{}, fixedSource{}, nil, nil)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Len(t, snap.Vehicles, 20)
	assert.Len(t, snap.Chargers, 3)
	assert.InDelta(t, 1.0/3600, snap.TickHours, tol)
}

func TestSimulationRejectsBadConfig(t *testing.T) {
	cases := []Config{
		{Vehicles: -1},
		{Hours: -2},
		{Chargers: -3},
		{TickSeconds: -1},
		{Assignment: "roundrobin"},
	}
	for _, cfg := range cases {
		_, err := New(cfg, fixedSource{}, nil, nil)
		assert.Error(t, err, "%+v", cfg)
	}
}

func TestSimulationEqualAssignment(t *testing.T) {
	cfg := Config{Vehicles: 20, Hours: 0.01, Chargers: 3, TickSeconds: 60, Assignment: AssignEqual}
	s, err := New(cfg, fixedSource{}, nil, nil)
	require.NoError(t, err)

	stats := s.TypeStats()
	require.Len(t, stats, model.NumManufacturers)
	for _, ts := range stats {
		assert.Equal(t, 4, ts.VehicleCount, ts.Manufacturer.String())
	}
}

func TestSimulationRandomAssignmentUsesSource(t *testing.T) {
	// fixedSource always draws min, so every vehicle is Alpha.
	cfg := Config{Vehicles: 10, Hours: 0.01, Chargers: 1, TickSeconds: 60, Assignment: AssignRandom}
	s, err := New(cfg, fixedSource{}, nil, nil)
	require.NoError(t, err)

	stats := s.TypeStats()
	require.Len(t, stats, 1)
	assert.Equal(t, model.Alpha, stats[0].Manufacturer)
	assert.Equal(t, 10, stats[0].VehicleCount)
}

func TestSimulationDeterministicForSeed(t *testing.T) {
	cfg := Config{Vehicles: 12, Hours: 3, Chargers: 2, TickSeconds: 30, Assignment: AssignRandom, Seed: 42}

	run := func() ([]model.TypeStats, model.FleetSnapshot) {
		s, err := New(cfg, rng.NewMathSource(cfg.Seed), nil, nil)
		require.NoError(t, err)
		require.NoError(t, s.Run(context.Background()))
		return s.TypeStats(), s.Snapshot()
	}

	statsA, snapA := run()
	statsB, snapB := run()
	assert.Equal(t, statsA, statsB)
	assert.Equal(t, snapA, snapB)
}

func TestSimulationRunsExactDuration(t *testing.T) {
	// 900s is exactly a quarter hour, so the clock accumulates exactly.
	cfg := Config{Vehicles: 5, Hours: 2, Chargers: 2, TickSeconds: 900, Assignment: AssignEqual}
	s, err := New(cfg, rng.NewMathSource(7), nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))

	assert.InDelta(t, 2.0, s.CurrentTime(), tol)
	assert.Equal(t, 8, s.StepCount())
}

func TestSimulationClampsFinalTick(t *testing.T) {
	// One hour-long tick against a quarter-hour run: a single clamped step.
	cfg := Config{Vehicles: 3, Hours: 0.25, Chargers: 1, TickSeconds: 3600, Assignment: AssignEqual}
	s, err := New(cfg, fixedSource{}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 1, s.StepCount())
	assert.InDelta(t, 0.25, s.CurrentTime(), tol)
	for _, v := range s.Snapshot().Vehicles {
		assert.InDelta(t, 0.25, v.Total.TotalTime(), tol, "vehicle %d", v.ID)
	}
}

func TestSimulationTimeConservationPerVehicle(t *testing.T) {
	cfg := Config{Vehicles: 20, Hours: 3, Chargers: 3, TickSeconds: 12, Assignment: AssignRandom, Seed: 99}
	s, err := New(cfg, rng.NewMathSource(cfg.Seed), nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))

	for _, v := range s.Snapshot().Vehicles {
		assert.InDelta(t, cfg.Hours, v.Total.TotalTime(), 1e-6, "vehicle %d", v.ID)
	}
}

func TestSimulationCountsFlightOncePerCompletion(t *testing.T) {
	// One fault-free Alpha flying across many ticks: exactly one flight ends
	// (at battery depletion) within the first 1.7 hours.
	cfg := Config{Vehicles: 1, Hours: 1.7, Chargers: 1, TickSeconds: 60, Assignment: AssignEqual}
	s, err := New(cfg, fixedSource{}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))

	stats := s.TypeStats()
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Flights)
	assert.Zero(t, stats[0].Faults)
}

func TestSimulationCountsChargeOncePerSession(t *testing.T) {
	// Alpha flies 1.667h, then charges 0.6h. Over 2.5h that is one full
	// flight and one completed charge, with a second flight in progress.
	cfg := Config{Vehicles: 1, Hours: 2.5, Chargers: 1, TickSeconds: 60, Assignment: AssignEqual}
	s, err := New(cfg, fixedSource{}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))

	stats := s.TypeStats()
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Flights)
	assert.Equal(t, 1, stats[0].Charges)
	assert.Equal(t, model.StateFlying, s.Snapshot().Vehicles[0].State)
}

func TestSimulationCountsChargeCompletedWithinOneTick(t *testing.T) {
	// With an hour-long tick an Alpha charge (0.6h) starts and finishes inside
	// a single tick, so the vehicle is back to Flying before the next edge
	// comparison. The session must still count.
	cfg := Config{Vehicles: 1, Hours: 6, Chargers: 1, TickSeconds: 3600, Assignment: AssignEqual}
	s, err := New(cfg, fixedSource{}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))

	stats := s.TypeStats()
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Charges)
	assert.InDelta(t, 1.2, stats[0].ChargingTime, 1e-6)
	assert.Equal(t, 2, stats[0].Flights)
	assert.Positive(t, stats[0].AvgChargingTimePerSession())
}

func TestSimulationFaultedFlightCounts(t *testing.T) {
	// Every fault trial hits, so each vehicle faults on the first tick and its
	// aborted flight still counts.
	cfg := Config{Vehicles: 5, Hours: 0.1, Chargers: 1, TickSeconds: 60, Assignment: AssignEqual}
	s, err := New(cfg, fixedSource{fault: true}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))

	var flights, faults int
	for _, ts := range s.TypeStats() {
		flights += ts.Flights
		faults += ts.Faults
	}
	assert.Equal(t, 5, flights)
	assert.Equal(t, 5, faults)
	for _, v := range s.Snapshot().Vehicles {
		assert.Equal(t, model.StateFaulted, v.State)
	}
}

func TestSimulationChargerContention(t *testing.T) {
	// Three identical vehicles share one charger. After they all deplete, at
	// most one may occupy the slot at any step.
	cfg := Config{Vehicles: 3, Hours: 4, Chargers: 1, TickSeconds: 60, Assignment: AssignEqual}
	s, err := New(cfg, fixedSource{}, nil, nil)
	require.NoError(t, err)

	obs := &contentionObserver{t: t}
	s.obs = obs
	require.NoError(t, s.Run(context.Background()))
	assert.Positive(t, obs.sawCharging)
}

type contentionObserver struct {
	t           *testing.T
	sawCharging int
}

func (o *contentionObserver) ObserveTick(snap model.FleetSnapshot) {
	charging := 0
	for _, v := range snap.Vehicles {
		if v.State == model.StateCharging {
			charging++
		}
	}
	if charging > 1 {
		o.t.Errorf("step %d: %d vehicles charging with one charger", snap.Step, charging)
	}
	o.sawCharging += charging
}

func TestSimulationObserverSeesEveryTick(t *testing.T) {
	cfg := Config{Vehicles: 2, Hours: 0.05, Chargers: 1, TickSeconds: 30, Assignment: AssignEqual}
	var steps []int
	obs := observerFunc(func(snap model.FleetSnapshot) { steps = append(steps, snap.Step) })

	s, err := New(cfg, fixedSource{}, nil, obs)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))

	require.Len(t, steps, s.StepCount())
	for i, step := range steps {
		assert.Equal(t, i+1, step)
	}
}

type observerFunc func(model.FleetSnapshot)

func (f observerFunc) ObserveTick(snap model.FleetSnapshot) { f(snap) }

func TestSimulationStopsOnCanceledContext(t *testing.T) {
	cfg := Config{Vehicles: 2, Hours: 3, Chargers: 1, TickSeconds: 1, Assignment: AssignEqual}
	s, err := New(cfg, fixedSource{}, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.StepCount())
}

func TestSimulationSnapshotChargerView(t *testing.T) {
	cfg := Config{Vehicles: 2, Hours: 4, Chargers: 1, TickSeconds: 600, Assignment: AssignEqual}
	s, err := New(cfg, fixedSource{}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))

	snap := s.Snapshot()
	require.Len(t, snap.Chargers, 1)
	// Two Alphas depleting in lockstep with one charger: whoever is not on
	// the charger is waiting or already cycled back to flight.
	for _, id := range snap.Waiting {
		assert.Contains(t, []int{1, 2}, id)
		assert.NotContains(t, snap.Chargers, id)
	}
}
