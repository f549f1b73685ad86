package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oshokin/timekeeper/internal/config"
	"github.com/oshokin/timekeeper/internal/service/tracker"
)

var (
	// outputPath is the file the feed is written to. Empty means stdout.
	outputPath string

	// exportCmd writes the configured alarms as an iCalendar feed.
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export configured alarms as an iCalendar feed.",
		Long: `Writes every configured alarm as an event at its next occurrence in the
alarm's zone, with a display reminder at the event start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options := trackerOptions(cmd)

			if outputPath != "" {
				file, err := os.OpenFile(filepath.Clean(outputPath), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.DefaultFilePermissions)
				if err != nil {
					return fmt.Errorf("open output: %w", err)
				}

				defer file.Close() //nolint:errcheck // Close error after a successful write is not actionable.

				options.Output = file
			}

			return tracker.Export(cmd.Context(), options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the feed to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
