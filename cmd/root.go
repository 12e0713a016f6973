package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/m-aleem/eVTOL-sim/app"
	"github.com/m-aleem/eVTOL-sim/config"
	"github.com/m-aleem/eVTOL-sim/core/sim"
	"github.com/m-aleem/eVTOL-sim/infra/logger"
)

var (
	cfgPath string

	flagVehicles    int
	flagHours       float64
	flagChargers    int
	flagTickSeconds float64
	flagSeed        int64
	flagEqual       bool
)

var rootCmd = &cobra.Command{
	Use:   "evtol-sim",
	Short: "Discrete-time eVTOL fleet simulation",
	Long: `evtol-sim runs a fleet of electric aircraft through flight, battery
depletion, charger queueing and recharging in fixed time slices, and reports
per-manufacturer statistics.`,
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "", "", "configuration file (yaml or json)")
	rootCmd.Flags().IntVarP(&flagVehicles, "vehicles", "v", 0, "number of vehicles")
	rootCmd.Flags().Float64VarP(&flagHours, "hours", "H", 0, "simulation duration in hours")
	rootCmd.Flags().IntVarP(&flagChargers, "chargers", "c", 0, "number of charging stations")
	rootCmd.Flags().Float64VarP(&flagTickSeconds, "timestep", "t", 0, "time step in seconds")
	rootCmd.Flags().Int64VarP(&flagSeed, "seed", "s", 0, "random seed (0 seeds from the clock)")
	rootCmd.Flags().BoolVarP(&flagEqual, "equal", "e", false, "distribute vehicle types equally instead of randomly")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if cfgPath != "" {
		c, err := config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	} else {
		cfg = config.Default()
	}

	// Flags set explicitly on the command line win over the config file.
	if cmd.Flags().Changed("vehicles") {
		cfg.Simulation.Vehicles = flagVehicles
	}
	if cmd.Flags().Changed("hours") {
		cfg.Simulation.Hours = flagHours
	}
	if cmd.Flags().Changed("chargers") {
		cfg.Simulation.Chargers = flagChargers
	}
	if cmd.Flags().Changed("timestep") {
		cfg.Simulation.TickSeconds = flagTickSeconds
	}
	if cmd.Flags().Changed("seed") {
		cfg.Simulation.Seed = flagSeed
	}
	if flagEqual {
		cfg.Simulation.Assignment = sim.AssignEqual
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
