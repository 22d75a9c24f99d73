package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists stored runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored reconciliation runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, l, err := loadApp(sourceFlags{}, nil)
		if err != nil {
			return err
		}
		defer l.Sync()

		store, err := openHistory(cfg, l)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}

		runs, err := store.List(ctx, historyLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTARTED\tOWNER\tSOURCE\tDAYS\tMISSING")
		for _, run := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
				run.ID, run.StartedAt.Local().Format(time.DateTime), run.Owner, run.Source, run.TotalDays, run.MissingPhotos)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to show")
	RootCmd.AddCommand(historyCmd)
}
