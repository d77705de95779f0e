package cmd

import (
	"github.com/spf13/cobra"

	"hdrtidy/internal/report"
	"hdrtidy/internal/tui"
)

// reviewCmd browses a report written by clean --report.
var reviewCmd = &cobra.Command{
	Use:   "review REPORT",
	Short: "Browse a cleaning report interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(report.NewFileStore(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
