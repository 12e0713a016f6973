// Package app wires configuration, logging, metrics sinks and the simulation
// core into a runnable service.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/m-aleem/eVTOL-sim/config"
	"github.com/m-aleem/eVTOL-sim/core/events"
	coremetrics "github.com/m-aleem/eVTOL-sim/core/metrics"
	"github.com/m-aleem/eVTOL-sim/core/model"
	"github.com/m-aleem/eVTOL-sim/core/rng"
	"github.com/m-aleem/eVTOL-sim/core/sim"
	"github.com/m-aleem/eVTOL-sim/infra/logger"
	"github.com/m-aleem/eVTOL-sim/infra/metrics"
	"github.com/m-aleem/eVTOL-sim/infra/mqtt"
	"github.com/m-aleem/eVTOL-sim/infra/report"
	"github.com/m-aleem/eVTOL-sim/internal/eventbus"
)

// Service runs one simulation with the configured observers attached.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	sink  coremetrics.SimSink
	runID string

	// progressOut receives the console progress bar; stdout by default.
	progressOut io.Writer
	closers     []func()
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	s := &Service{
		cfg:         cfg,
		log:         logger.New("service"),
		runID:       uuid.NewString(),
		progressOut: os.Stdout,
	}

	var sinks []coremetrics.SimSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken,
			cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		if closer, ok := sink.(*metrics.InfluxSink); ok {
			s.closers = append(s.closers, closer.Close)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Telemetry.Enabled {
		pub, err := mqtt.NewPublisher(cfg.Telemetry)
		if err != nil {
			return nil, fmt.Errorf("telemetry publisher: %w", err)
		}
		s.closers = append(s.closers, pub.Close)
		sinks = append(sinks, pub)
	}

	switch len(sinks) {
	case 0:
		s.sink = coremetrics.NopSink{}
	case 1:
		s.sink = sinks[0]
	default:
		s.sink = metrics.NewMultiSink(sinks...)
	}
	return s, nil
}

// RunID returns the identifier stamped on this run's report and metrics.
func (s *Service) RunID() string { return s.runID }

// Run executes the simulation to completion and emits the report and summary.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	bus := eventbus.New()
	done := metrics.StartEventCollector(ctx, bus, s.sink, s.log)

	obs := &tickObserver{
		bus:   bus,
		total: s.cfg.Simulation.Hours,
	}
	if s.cfg.Progress {
		obs.progress = s.progressOut
	}

	src := rng.NewMathSource(s.cfg.Simulation.Seed)
	simulation, err := sim.New(s.cfg.Simulation, src, logger.New("sim"), obs)
	if err != nil {
		return err
	}

	s.log.Infof("run %s starting", s.runID)
	start := time.Now()
	runErr := simulation.Run(ctx)
	elapsed := time.Since(start)
	if obs.progress != nil {
		fmt.Fprintln(obs.progress)
	}

	// Drain queued tick events before recording the summary so it lands last.
	bus.Close()
	<-done
	if dropped := bus.Dropped(); dropped > 0 {
		s.log.Warnf("dropped %d tick events for slow observers", dropped)
	}

	stats := simulation.TypeStats()
	fleet := simulation.Snapshot()
	if err := s.sink.RecordSummary(s.runID, stats, elapsed); err != nil {
		s.log.Errorf("record summary: %v", err)
	}

	if s.cfg.Report.Enabled {
		path, err := report.WriteFile(s.cfg.Report, report.Summary{
			RunID:   s.runID,
			Config:  s.cfg.Simulation,
			Stats:   stats,
			Fleet:   fleet,
			Elapsed: elapsed,
		})
		if err != nil {
			s.log.Errorf("write report: %v", err)
		} else {
			s.log.Infof("report written to %s", path)
		}
	}

	s.log.Infof("run %s finished in %s (%d steps)", s.runID, elapsed.Round(time.Millisecond), simulation.StepCount())
	return runErr
}

// Close releases connected sinks.
func (s *Service) Close() error {
	for _, c := range s.closers {
		c()
	}
	return nil
}

// tickObserver forwards snapshots onto the bus and drives the progress bar.
type tickObserver struct {
	bus      *eventbus.Bus
	progress io.Writer
	total    float64
	ticks    int
}

func (o *tickObserver) ObserveTick(snap model.FleetSnapshot) {
	o.bus.Publish(events.TickEvent{Fleet: snap})
	o.ticks++
	if o.progress != nil && (o.ticks%5 == 0 || snap.TimeHours >= o.total) {
		report.Progress(o.progress, snap.TimeHours, o.total)
	}
}
