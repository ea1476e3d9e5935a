package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mls-insights/services"
	"mls-insights/storage"
)

var (
	exportFormat  string
	exportDataset string
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a dataset's cleaned sold listings to CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := services.NewDatasetStore(cfg, logger, nil)
		snap, err := primarySnapshot(store, exportDataset)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = fmt.Sprintf("%s-sold.%s", snap.Dataset.Name, exportFormat)
		}
		w, err := storage.Create(exportFormat, out)
		if err != nil {
			return err
		}

		sold := snap.Data.Sold
		if err := w.Write(sold.Listings); err != nil {
			_ = w.Close()
			return fmt.Errorf("export %s: %w", out, err)
		}
		if x, ok := w.(*storage.XLSXWriter); ok {
			if err := x.WriteSummary(services.CalculateMarketStats(sold)); err != nil {
				_ = x.Close()
				return fmt.Errorf("export %s: %w", out, err)
			}
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("export %s: %w", out, err)
		}

		fmt.Printf("✓ Exported %s sold listings from %s to %s\n", services.Count(sold.Len()), snap.Dataset.DisplayName(), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", storage.FormatCSV, "output format: csv or xlsx")
	exportCmd.Flags().StringVar(&exportDataset, "dataset", "", "dataset name (default: the primary dataset)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default: <dataset>-sold.<format>)")
	rootCmd.AddCommand(exportCmd)
}
