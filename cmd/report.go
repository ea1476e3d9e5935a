package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mls-insights/config"
	"mls-insights/models"
	"mls-insights/services"
)

var (
	reportMonths  int
	reportDataset string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the market narrative report to the console",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportMonths <= 0 {
			return fmt.Errorf("--months must be positive, got %d", reportMonths)
		}
		store, err := loadStore(cmd.Context(), nil)
		if err != nil {
			return err
		}
		snap, err := primarySnapshot(store, reportDataset)
		if err != nil {
			return err
		}

		insights := services.NewInsightService(logger)
		report := insights.Generate(snap.Data, reportMonths)

		var neighborhood *models.ListingSet
		if c, err := store.ByRole(config.RoleContext); err == nil && c.Dataset.Name != snap.Dataset.Name {
			neighborhood = c.Data.Sold
		}
		pricing := services.NewPricingService(logger)
		report.Pricing, _ = pricing.Analyze(snap.Data.Sold, neighborhood, services.PricingParamsFromConfig(cfg.Pricing))

		insights.Print(os.Stdout, report)
		return nil
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportMonths, "months", 12, "trailing window in months for the headline statistics")
	reportCmd.Flags().StringVar(&reportDataset, "dataset", "", "dataset name (default: the primary dataset)")
	rootCmd.AddCommand(reportCmd)
}
