package metrics

import (
	"context"

	"github.com/m-aleem/eVTOL-sim/core/events"
	coremetrics "github.com/m-aleem/eVTOL-sim/core/metrics"
	"github.com/m-aleem/eVTOL-sim/infra/logger"
	"github.com/m-aleem/eVTOL-sim/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and forwards tick events to
// the sink, logging sink failures. It returns a channel that closes when the
// collector exits, either because the context was canceled or the bus was
// closed.
func StartEventCollector(ctx context.Context, bus *eventbus.Bus, sink coremetrics.SimSink, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe(64)
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if e, ok := ev.(events.TickEvent); ok {
					if err := sink.RecordTick(e.Fleet); err != nil {
						log.Errorf("record tick: %v", err)
					}
				}
			}
		}
	}()
	return done
}
