package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View the effective configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		return enc.Close()
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every configured dataset file is readable",
	RunE: func(cmd *cobra.Command, args []string) error {
		missing := 0
		for _, d := range cfg.Datasets {
			if _, err := os.Stat(d.Path); err != nil {
				fmt.Printf("✗ %s (%s): %v\n", d.DisplayName(), d.Role, err)
				missing++
				continue
			}
			fmt.Printf("✓ %s (%s): %s\n", d.DisplayName(), d.Role, d.Path)
		}
		if missing == len(cfg.Datasets) {
			return fmt.Errorf("none of the %d configured datasets is readable", missing)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}
