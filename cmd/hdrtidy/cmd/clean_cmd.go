package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hdrtidy/internal/clock"
	"hdrtidy/internal/cmakelists"
	"hdrtidy/internal/core"
	"hdrtidy/internal/libtree"
	"hdrtidy/internal/preview"
	"hdrtidy/internal/report"
)

// cleanCmd flattens includes and registers dependencies.
var cleanCmd = &cobra.Command{
	Use:   "clean [lib...]",
	Short: "Flatten includes and register dependencies for a library family",
	Long: `Cleans every library of the configured family, or only the named ones.
With --dry-run nothing is written and the would-be changes are printed as a
unified diff.`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root, _ = flags.GetString("root")
	}
	if flags.Changed("family") {
		cfg.Clean, _ = flags.GetString("family")
	}
	if flags.Changed("dry-run") {
		cfg.DryRun, _ = flags.GetBool("dry-run")
	}
	if flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("report") {
		cfg.Report, _ = flags.GetString("report")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	catalog, err := libtree.Load(cfg.Root, cfg.Layouts())
	if err != nil {
		return err
	}
	libs, err := selectLibs(catalog, cfg.Clean, args)
	if err != nil {
		return err
	}
	logger.Info("Cleaning libraries",
		zap.String("root", cfg.Root),
		zap.String("family", cfg.Clean),
		zap.Int("libs", len(libs)),
		zap.Bool("dry_run", cfg.DryRun))

	cleaner := core.NewCleaner(catalog, core.Options{
		DryRun:    cfg.DryRun,
		Jobs:      cfg.Jobs,
		Registrar: cmakelists.Registrar{Function: cfg.CMakeFunction},
	}, logger, nil)
	results, err := cleaner.CleanAll(cmd.Context(), libs)
	if err != nil {
		return err
	}

	changes := core.Changes(results)
	if cfg.DryRun {
		if err := preview.Write(cmd.OutOrStdout(), changes, previewOptions()); err != nil {
			return err
		}
	}
	logger.Info("Done", zap.Int("changed_files", len(changes)))

	if cfg.Report == "" {
		return nil
	}
	rep := core.NewReport(cfg.Root, cfg.DryRun, clock.RealClock{}.Now(), results)
	if err := report.NewFileStore(cfg.Report).Save(rep); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	logger.Info("Wrote report", zap.String("path", cfg.Report))
	return nil
}

// selectLibs returns the named libraries of family, or all of them.
func selectLibs(catalog *libtree.Catalog, family string, names []string) ([]libtree.Lib, error) {
	if len(names) == 0 {
		return catalog.Libs(family)
	}
	libs := make([]libtree.Lib, 0, len(names))
	for _, name := range names {
		lib, err := catalog.Lib(family, name)
		if err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	}
	return libs, nil
}

func init() {
	cleanCmd.Flags().Bool("dry-run", false, "print changes instead of writing them")
	cleanCmd.Flags().Int("jobs", 4, "libraries cleaned concurrently")
	cleanCmd.Flags().String("report", "", "write a JSON report to this path")
	cleanCmd.Flags().String("family", "", "family whose libraries are cleaned")
	cleanCmd.Flags().String("root", "", "root of the source tree")
	rootCmd.AddCommand(cleanCmd)
}
