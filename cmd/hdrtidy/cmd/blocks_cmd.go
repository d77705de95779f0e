package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hdrtidy/internal/core"
)

// blocksCmd prints the contiguous runs of matching lines in a file.
var blocksCmd = &cobra.Command{
	Use:   "blocks FILE",
	Short: "Show the contiguous blocks of lines matching a pattern",
	Long: `Prints each block of consecutive matching lines as START-END (0-based,
inclusive), followed by the largest block. Ties go to the earliest block.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		re, err := patternFlag(cmd)
		if err != nil {
			return err
		}
		table, largest, err := core.LocateBlocks(args[0], re)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, run := range table {
			fmt.Fprintf(out, "%s\t%d lines\n", run, run.Len())
		}
		fmt.Fprintf(out, "largest: %s\n", largest)
		return nil
	},
}

func init() {
	blocksCmd.Flags().String("pattern", "", "regular expression selecting the lines")
	rootCmd.AddCommand(blocksCmd)
}
