package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hdrtidy/internal/config"
	"hdrtidy/internal/logging"
	"hdrtidy/internal/preview"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *zap.Logger

	newLogger = logging.New
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hdrtidy",
	Short: "Flatten library-qualified includes and keep CMake dependency blocks in sync",
	Long: `hdrtidy rewrites includes of the form "Lib/Header.h" to "Header.h" for every
known library, and registers the libraries each source tree pulls in with its
CMakeLists.txt, inside the largest contiguous block of registration calls.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Logging.Level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Logging.Format = logFormat
		}
		logger, err = newLogger(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute runs the root command and flushes the logger whether or not the
// command failed.
func execute() error {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

// previewOptions colours diffs only when stdout is a terminal.
func previewOptions() preview.Options {
	return preview.Options{Color: !color.NoColor}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to hdrtidy.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console or json)")
}
