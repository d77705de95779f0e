package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hdrtidy/internal/core"
	"hdrtidy/internal/preview"
)

// sortCmd sorts every block of matching lines in a file.
var sortCmd = &cobra.Command{
	Use:   "sort FILE",
	Short: "Sort and deduplicate each contiguous block of lines matching a pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		re, err := patternFlag(cmd)
		if err != nil {
			return err
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		change, table, err := core.SortBlocks(args[0], re, dryRun)
		if err != nil {
			return err
		}
		if change == nil {
			logger.Info("Already sorted", zap.String("path", args[0]), zap.Ints("starts", table.Starts()))
			return nil
		}
		logger.Info("Sorted blocks", zap.String("path", args[0]), zap.Ints("starts", table.Starts()), zap.Bool("dry_run", dryRun))
		if dryRun {
			return preview.Write(cmd.OutOrStdout(), []preview.Change{*change}, previewOptions())
		}
		return nil
	},
}

func patternFlag(cmd *cobra.Command) (*regexp.Regexp, error) {
	expr, _ := cmd.Flags().GetString("pattern")
	if expr == "" {
		return nil, fmt.Errorf("--pattern is required")
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return re, nil
}

func init() {
	sortCmd.Flags().String("pattern", "", "regular expression selecting the lines to sort")
	sortCmd.Flags().Bool("dry-run", false, "print the diff instead of writing the file")
	rootCmd.AddCommand(sortCmd)
}
