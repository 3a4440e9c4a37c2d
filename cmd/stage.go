package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/venda-crm/venda/internal/pipeline"
)

var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Inspect the configured pipeline stages",
}

var stageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stages with lead counts and totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		leads, err := a.Leads.List(ctx)
		if err != nil {
			return err
		}
		board := pipeline.Build(leads, a.Config.Stages)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ORDER\tSTAGE\tLEADS\tVALUE")
		for _, g := range board.Groups {
			fmt.Fprintf(w, "%d\t%s\t%d\t%.0f\n",
				g.Stage.Order, g.Stage.Title, g.Count(), g.TotalValue)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if len(board.Orphans) > 0 {
			fmt.Printf("\nWarning: %d lead(s) reference stages not in the configuration:\n", len(board.Orphans))
			for _, l := range board.Orphans {
				fmt.Printf("  #%d %s -> %q\n", l.ID, l.Name, l.Column)
			}
		}
		return nil
	},
}

func init() {
	stageCmd.AddCommand(stageListCmd)
	rootCmd.AddCommand(stageCmd)
}
