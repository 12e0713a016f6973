package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/m-aleem/eVTOL-sim/core/model"
)

// PromSink exposes fleet state as Prometheus metrics.
type PromSink struct {
	vehiclesByState *prometheus.GaugeVec
	waiting         prometheus.Gauge
	chargersInUse   prometheus.Gauge
	simTime         prometheus.Gauge
	faults          *prometheus.CounterVec
	flights         *prometheus.CounterVec
	charges         *prometheus.CounterVec

	lastStats map[model.Manufacturer]model.TypeStats
}

// NewPromSink registers the simulation metrics on the provided registerer. If
// reg is nil, the default registerer is used. Already registered collectors
// are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		vehiclesByState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "evtol_vehicles",
			Help: "Number of vehicles per state",
		}, []string{"state"}),
		waiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "evtol_charger_queue_length",
			Help: "Vehicles waiting for a charger",
		}),
		chargersInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "evtol_chargers_in_use",
			Help: "Occupied charger slots",
		}),
		simTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "evtol_sim_time_hours",
			Help: "Simulated time in hours",
		}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evtol_faults_total",
			Help: "In-flight faults per manufacturer",
		}, []string{"manufacturer"}),
		flights: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evtol_flights_total",
			Help: "Completed flights per manufacturer",
		}, []string{"manufacturer"}),
		charges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evtol_charges_total",
			Help: "Completed charging sessions per manufacturer",
		}, []string{"manufacturer"}),
		lastStats: make(map[model.Manufacturer]model.TypeStats),
	}

	collectors := []prometheus.Collector{
		s.vehiclesByState, s.waiting, s.chargersInUse, s.simTime,
		s.faults, s.flights, s.charges,
	}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			collectors[i] = are.ExistingCollector
		}
	}
	s.vehiclesByState = collectors[0].(*prometheus.GaugeVec)
	s.waiting = collectors[1].(prometheus.Gauge)
	s.chargersInUse = collectors[2].(prometheus.Gauge)
	s.simTime = collectors[3].(prometheus.Gauge)
	s.faults = collectors[4].(*prometheus.CounterVec)
	s.flights = collectors[5].(*prometheus.CounterVec)
	s.charges = collectors[6].(*prometheus.CounterVec)
	return s, nil
}

// RecordTick updates the fleet gauges from the snapshot.
func (s *PromSink) RecordTick(snap model.FleetSnapshot) error {
	counts := make(map[model.State]int)
	for _, v := range snap.Vehicles {
		counts[v.State]++
	}
	for st := model.StateReady; st <= model.StateFaulted; st++ {
		s.vehiclesByState.WithLabelValues(st.String()).Set(float64(counts[st]))
	}
	s.waiting.Set(float64(len(snap.Waiting)))
	inUse := 0
	for _, id := range snap.Chargers {
		if id != 0 {
			inUse++
		}
	}
	s.chargersInUse.Set(float64(inUse))
	s.simTime.Set(snap.TimeHours)
	return nil
}

// RecordSummary advances the per-manufacturer counters to the final totals.
func (s *PromSink) RecordSummary(runID string, stats []model.TypeStats, elapsed time.Duration) error {
	_ = runID
	_ = elapsed
	for _, ts := range stats {
		prev := s.lastStats[ts.Manufacturer]
		name := ts.Manufacturer.String()
		s.faults.WithLabelValues(name).Add(float64(ts.Faults - prev.Faults))
		s.flights.WithLabelValues(name).Add(float64(ts.Flights - prev.Flights))
		s.charges.WithLabelValues(name).Add(float64(ts.Charges - prev.Charges))
		s.lastStats[ts.Manufacturer] = ts
	}
	return nil
}
