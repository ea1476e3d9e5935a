package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mls-insights/config"
	"mls-insights/models"
	"mls-insights/services"
	"mls-insights/storage"
	"mls-insights/utils"
)

var (
	memoPDF  string
	memoHTML string
)

var memoCmd = &cobra.Command{
	Use:   "memo",
	Short: "Print the pricing memo for the configured subject property",
	Long: `memo prices the subject property in the memo section of the config against
its neighborhood dataset (memo.dataset, default: the context dataset), with the
primary dataset as the wider-market reference. Use --pdf to also print the memo
to a PDF with headless Chrome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore(cmd.Context(), nil)
		if err != nil {
			return err
		}

		var neighborhood *services.Snapshot
		if cfg.Memo.Dataset != "" {
			neighborhood, err = store.Get(cfg.Memo.Dataset)
		} else {
			neighborhood, err = store.ByRole(config.RoleContext)
		}
		if err != nil {
			return fmt.Errorf("memo dataset: %w", err)
		}

		var broad *models.ListingSet
		if p, err := store.ByRole(config.RolePrimary); err == nil && p.Dataset.Name != neighborhood.Dataset.Name {
			broad = p.Data.Sold
		}

		memo, err := services.BuildMemo(services.NewPricingService(logger), neighborhood.Data.Sold, broad, cfg.Memo, time.Now())
		if err != nil {
			return err
		}
		memo.Print(os.Stdout)

		if memoPDF == "" && memoHTML == "" {
			return nil
		}
		var html bytes.Buffer
		if err := memo.RenderHTML(&html); err != nil {
			return fmt.Errorf("render memo html: %w", err)
		}
		if memoHTML != "" {
			if err := os.MkdirAll(filepath.Dir(memoHTML), 0755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := os.WriteFile(memoHTML, html.Bytes(), 0644); err != nil {
				return fmt.Errorf("write memo html: %w", err)
			}
			fmt.Printf("✓ Memo HTML written to %s\n", memoHTML)
		}
		if memoPDF != "" {
			retry := &utils.RetryConfig{
				MaxAttempts: cfg.Retry.MaxAttempts,
				BaseDelay:   time.Duration(cfg.Retry.BaseDelayMs) * time.Millisecond,
				Logger:      logger,
			}
			pdf := storage.NewPDFWriter(cfg.ChromeBin, retry, logger)
			if err := pdf.Render(cmd.Context(), html.Bytes(), memoPDF); err != nil {
				return err
			}
			fmt.Printf("✓ Memo PDF written to %s\n", memoPDF)
		}
		return nil
	},
}

func init() {
	memoCmd.Flags().StringVar(&memoPDF, "pdf", "", "also print the memo to this PDF file")
	memoCmd.Flags().StringVar(&memoHTML, "html", "", "also write the memo as HTML to this file")
	rootCmd.AddCommand(memoCmd)
}
