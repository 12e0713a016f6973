// Package metrics defines the sink interfaces the simulation's observability
// adapters implement. Concrete sinks live under infra/metrics and infra/mqtt.
package metrics

import (
	"time"

	"github.com/m-aleem/eVTOL-sim/core/model"
)

// SimSink records simulation progress for observability purposes. RecordTick
// is called after every tick with an immutable snapshot; RecordSummary once at
// run end. Sinks may be called from a goroutine other than the simulation
// loop, but never from more than one at a time.
type SimSink interface {
	RecordTick(snap model.FleetSnapshot) error
	RecordSummary(runID string, stats []model.TypeStats, elapsed time.Duration) error
}

// NopSink implements SimSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordTick(model.FleetSnapshot) error { return nil }

func (NopSink) RecordSummary(string, []model.TypeStats, time.Duration) error { return nil }
