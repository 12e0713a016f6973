package metrics

import (
	"errors"
	"time"

	coremetrics "github.com/m-aleem/eVTOL-sim/core/metrics"
	"github.com/m-aleem/eVTOL-sim/core/model"
)

// MultiSink fans recordings out to several sinks. Every sink sees every call;
// errors are joined.
type MultiSink struct {
	sinks []coremetrics.SimSink
}

// NewMultiSink creates a MultiSink over the given sinks.
func NewMultiSink(sinks ...coremetrics.SimSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordTick(snap model.FleetSnapshot) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordTick(snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordSummary(runID string, stats []model.TypeStats, elapsed time.Duration) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordSummary(runID, stats, elapsed); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
