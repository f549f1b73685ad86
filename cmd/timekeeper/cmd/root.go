package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/timekeeper/internal/config"
	"github.com/oshokin/timekeeper/internal/logger"
	"github.com/oshokin/timekeeper/internal/service/tracker"
	"github.com/oshokin/timekeeper/internal/version"
)

const configFlag = "config"

var (
	// configPath to the configuration YAML file.
	configPath string

	// rootCmd represents the base command grouping the timekeeper tools.
	rootCmd = &cobra.Command{
		Use:   "timekeeper",
		Short: "Track world clocks, convert times between zones and fire one-shot alarms.",
		Long: `Timekeeper keeps a live clock, reads a catalog of world clocks,
converts wall-clock times between IANA zones and fires one-shot alarms and
reminders in their own zones.

Settings are read from a YAML file. When --config is not given and the
default file is missing, built-in defaults are used.`,
		SilenceUsage: true,
	}
)

// Execute runs the timekeeper CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	err := rootCmd.Execute()

	logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

// trackerOptions builds the options shared by every subcommand.
func trackerOptions(cmd *cobra.Command) *tracker.Options {
	return &tracker.Options{
		ConfigPath:     configPath,
		ConfigExplicit: cmd.Flags().Changed(configFlag),
		Output:         cmd.OutOrStdout(),
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, configFlag, "c", config.DefaultConfigFilename, "path to configuration file")
}
