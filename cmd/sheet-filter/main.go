package main

import (
	"fmt"
	"os"
	"path/filepath"

	"sheet-filter/internal/config"
	"sheet-filter/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	appName    = "Sheet Filter"
	appVersion = "1.0.0"
	appDesc    = "Filter spreadsheet rows by a null test and export the result"
)

var (
	configPath string
	verbose    bool
	cfg        *config.Config
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("%v", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sheet-filter",
		Short:         appDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging (DEBUG level)")

	root.AddCommand(newFilterCmd(), newServeCmd(), newVersionCmd())
	return root
}

// initialize loads .env, the config file and the logger
func initialize() error {
	// A missing .env is normal
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded .env file")
	}

	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg = c

	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}

	logPath := filepath.Join(cfg.Output.Dir, "sheet_filter.log")
	if err := logger.Init(os.Stdout, logPath, verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if verbose {
		cfg.Print()
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n%s\n", appName, appVersion, appDesc)
		},
	}
}
