package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/m-aleem/eVTOL-sim/core/metrics"
	"github.com/m-aleem/eVTOL-sim/core/model"
	"github.com/m-aleem/eVTOL-sim/infra/logger"
)

// InfluxSink writes per-tick vehicle state and run summaries to an InfluxDB
// instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails, so a missing database never blocks a run.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.SimSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordTick writes one point per vehicle plus a fleet-level point.
func (s *InfluxSink) RecordTick(snap model.FleetSnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := time.Now()

	for _, v := range snap.Vehicles {
		p := write.NewPointWithMeasurement("vehicle_state").
			AddTag("vehicle_id", strconv.Itoa(v.ID)).
			AddTag("manufacturer", v.Manufacturer.String()).
			AddTag("state", v.State.String()).
			AddField("battery_kwh", round3(v.BatteryKWh)).
			AddField("battery_pct", round3(v.BatteryPct)).
			AddField("flight_time", round3(v.Total.FlightTime)).
			AddField("distance", round3(v.Total.DistanceTraveled)).
			AddField("faults", v.Total.Faults).
			SetTime(now)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}

	p := write.NewPointWithMeasurement("fleet_state").
		AddField("sim_time_hours", round3(snap.TimeHours)).
		AddField("waiting", len(snap.Waiting)).
		AddField("step", snap.Step).
		SetTime(now)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSummary writes one point per manufacturer with the run totals.
func (s *InfluxSink) RecordSummary(runID string, stats []model.TypeStats, elapsed time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := time.Now()

	for _, ts := range stats {
		p := write.NewPointWithMeasurement("run_summary").
			AddTag("run_id", runID).
			AddTag("manufacturer", ts.Manufacturer.String()).
			AddField("vehicles", ts.VehicleCount).
			AddField("flights", ts.Flights).
			AddField("charges", ts.Charges).
			AddField("flight_time", round3(ts.FlightTime)).
			AddField("distance", round3(ts.Distance)).
			AddField("charging_time", round3(ts.ChargingTime)).
			AddField("passenger_miles", round3(ts.PassengerMiles)).
			AddField("faults", ts.Faults).
			AddField("elapsed_ms", elapsed.Milliseconds()).
			SetTime(now)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
