package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mls-insights/config"
	"mls-insights/services"
	"mls-insights/utils"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration and logger, set before any subcommand runs.
	cfg    *config.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mls-insights",
	Short: "Market statistics, pricing and reports over MLS listing exports",
	Long: `mls-insights loads tab-delimited MLS exports, cleans them down to comparable
sold homes and turns them into market statistics, a list-price recommendation,
a console report, a pricing memo and an interactive dashboard.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); defaults and MLS_* env vars apply without one")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if debug {
		c.Log.Level = "debug"
	}
	cfg = c
	logger = utils.NewLoggerWithOptions(os.Stderr, c.Log.Level, c.Log.Format)
	return nil
}

// loadStore loads every configured dataset. Commands that only need a subset
// still benefit from the concurrent load.
func loadStore(ctx context.Context, metrics *services.Metrics) (*services.DatasetStore, error) {
	store := services.NewDatasetStore(cfg, logger, metrics)
	if err := store.LoadAll(ctx); err != nil {
		return store, fmt.Errorf("load datasets: %w", err)
	}
	return store, nil
}

// primarySnapshot returns the named dataset, or the primary one when name is
// empty. Load errors keep the source path.
func primarySnapshot(store *services.DatasetStore, name string) (*services.Snapshot, error) {
	if name == "" {
		d, ok := cfg.Primary()
		if !ok {
			return nil, fmt.Errorf("%w: no %s dataset configured", services.ErrNoDatasets, config.RolePrimary)
		}
		name = d.Name
	}
	return store.Get(name)
}
