package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/timekeeper/internal/service/tracker"
)

// convertCmd converts a wall-clock time between zones.
var convertCmd = &cobra.Command{
	Use:     "convert HH:mm FROM TO",
	Short:   "Convert a wall-clock time from one zone to another.",
	Example: "  timekeeper convert 09:00 UTC Asia/Tokyo",
	Args:    cobra.ExactArgs(3), //nolint:mnd // Time, source zone and target zone.
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := tracker.Convert(cmd.Context(), trackerOptions(cmd), args[0], args[1], args[2])

		return err
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(convertCmd)
}
