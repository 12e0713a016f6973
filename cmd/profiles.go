package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/m-aleem/eVTOL-sim/core/model"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Print the manufacturer profile table",
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Manufacturer\tCruise (mph)\tBattery (kWh)\tCharge (h)\tkWh/mile\tPassengers\tFault p/h")
	for _, p := range model.Profiles() {
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%g\t%d\t%g\n",
			p.Manufacturer, p.CruiseSpeedMPH, p.BatteryKWh,
			p.ChargeTimeHours, p.EnergyPerMileKWh, p.PassengerCount, p.FaultPerHour)
	}
	return tw.Flush()
}
