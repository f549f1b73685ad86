package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/timekeeper/internal/service/tracker"
)

// zonesCmd prints the world clock catalog.
var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Print every catalog zone with its current time and date.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := tracker.Zones(cmd.Context(), trackerOptions(cmd))

		return err
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(zonesCmd)
}
