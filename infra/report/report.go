// Package report renders a human-readable account of a finished run: the
// parameters, a per-manufacturer statistics table and the final fleet status.
// It reads snapshots and aggregates only; it never mutates simulation state.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/m-aleem/eVTOL-sim/core/model"
	"github.com/m-aleem/eVTOL-sim/core/sim"
)

// Config controls where run reports are written.
type Config struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "output"
	}
}

// Summary bundles everything the report needs about a finished run.
type Summary struct {
	RunID   string
	Config  sim.Config
	Stats   []model.TypeStats
	Fleet   model.FleetSnapshot
	Elapsed time.Duration
}

// WriteFile renders the report into cfg.Dir and returns the file path.
func WriteFile(cfg Config, s Summary) (string, error) {
	cfg.SetDefaults()
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(cfg.Dir, fmt.Sprintf("evtol_sim_report_%s.txt", s.RunID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	if err := Write(f, s); err != nil {
		return "", err
	}
	return path, nil
}

// Write renders the report to w.
func Write(w io.Writer, s Summary) error {
	divider(w, "eVTOL Simulation Report")
	fmt.Fprintf(w, "Run ID:    %s\n", s.RunID)
	fmt.Fprintf(w, "Elapsed:   %s\n", s.Elapsed.Round(time.Millisecond))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parameters:")
	fmt.Fprintf(w, "  Vehicles:   %d\n", s.Config.Vehicles)
	fmt.Fprintf(w, "  Hours:      %g\n", s.Config.Hours)
	fmt.Fprintf(w, "  Chargers:   %d\n", s.Config.Chargers)
	fmt.Fprintf(w, "  Tick:       %gs\n", s.Config.TickSeconds)
	fmt.Fprintf(w, "  Assignment: %s\n", s.Config.Assignment)
	fmt.Fprintf(w, "  Seed:       %d\n", s.Config.Seed)
	fmt.Fprintln(w)

	divider(w, "Results by Vehicle Type")
	if err := writeTypeTable(w, s.Stats); err != nil {
		return err
	}

	fmt.Fprintln(w)
	divider(w, "Fleet Spread")
	writeSpread(w, s.Fleet)

	fmt.Fprintln(w)
	divider(w, "Final Vehicle Status")
	writeVehicles(w, s.Fleet)
	return nil
}

func divider(w io.Writer, title string) {
	fmt.Fprintf(w, "==== %s ====\n", title)
}

func writeTypeTable(w io.Writer, stats []model.TypeStats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Type\tCount\tFlights\tAvg Flight (h)\tAvg Dist (mi)\tCharges\tAvg Charge (h)\tFaults (per veh)\tPAX Miles")
	for _, ts := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.4f\t%.2f\t%d\t%.4f\t%d (%.2f)\t%.2f\n",
			ts.Manufacturer,
			ts.VehicleCount,
			ts.Flights,
			ts.AvgFlightTimePerFlight(),
			ts.AvgDistancePerFlight(),
			ts.Charges,
			ts.AvgChargingTimePerSession(),
			ts.Faults,
			ts.FaultRate(),
			ts.PassengerMiles,
		)
	}
	return tw.Flush()
}

// writeSpread reports mean and standard deviation of per-vehicle totals across
// the whole fleet, a quick read on how evenly charger access was shared.
func writeSpread(w io.Writer, fleet model.FleetSnapshot) {
	if len(fleet.Vehicles) == 0 {
		fmt.Fprintln(w, "(empty fleet)")
		return
	}
	dist := make([]float64, len(fleet.Vehicles))
	flight := make([]float64, len(fleet.Vehicles))
	queued := make([]float64, len(fleet.Vehicles))
	for i, v := range fleet.Vehicles {
		dist[i] = v.Total.DistanceTraveled
		flight[i] = v.Total.FlightTime
		queued[i] = v.Total.QueuedTime
	}
	fmt.Fprintf(w, "Distance (mi):    mean %.2f, stddev %.2f\n", stat.Mean(dist, nil), stat.StdDev(dist, nil))
	fmt.Fprintf(w, "Flight time (h):  mean %.4f, stddev %.4f\n", stat.Mean(flight, nil), stat.StdDev(flight, nil))
	fmt.Fprintf(w, "Queued time (h):  mean %.4f, stddev %.4f\n", stat.Mean(queued, nil), stat.StdDev(queued, nil))
}

func writeVehicles(w io.Writer, fleet model.FleetSnapshot) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tType\tState\tBattery\tFlight (h)\tDist (mi)\tCharge (h)\tQueued (h)\tFaults")
	for _, v := range fleet.Vehicles {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.0f%%\t%.4f\t%.2f\t%.4f\t%.4f\t%d\n",
			v.ID,
			v.Manufacturer,
			v.State,
			v.BatteryPct,
			v.Total.FlightTime,
			v.Total.DistanceTraveled,
			v.Total.ChargingTime,
			v.Total.QueuedTime,
			v.Total.Faults,
		)
	}
	tw.Flush()
}
