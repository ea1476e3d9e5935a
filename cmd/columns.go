package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mls-insights/columns"
)

var columnsKind string

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List the documented MLS export columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := columns.Kind(columnsKind)
		entries := columns.Entries(kind)
		if len(entries) == 0 {
			return fmt.Errorf("no columns of kind %q", columnsKind)
		}

		group := color.New(color.FgYellow, color.Bold)
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		current := ""
		for _, e := range entries {
			if e.Group != current {
				if current != "" {
					fmt.Fprintln(tw)
				}
				tw.Flush()
				group.Println(e.Group)
				current = e.Group
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Name, e.Kind, e.Description)
		}
		return tw.Flush()
	},
}

func init() {
	columnsCmd.Flags().StringVar(&columnsKind, "kind", "", "only list columns of this kind (price, date, numeric, categorical, text, other)")
	rootCmd.AddCommand(columnsCmd)
}
