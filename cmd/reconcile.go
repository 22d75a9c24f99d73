package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"photo-sync/feature/history"
	"photo-sync/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reconcileFlags sourceFlags
	jsonOutput     bool
	saveRun        bool
)

// reconcileCmd reports, per day, the photos each friend has that the owner lacks.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [owner] [root]",
	Short: "Report the photos your friends have and you are missing",
	Long: `Scans every day folder and compares the owner's photos with every other
user's photos for the same day. Nothing is copied or modified.

Examples:
  # Owner "My" under ./photo_example (the defaults)
  photo-sync reconcile

  # Another owner and tree, written to reconcile_<unix>.json as well
  photo-sync reconcile Lev /srv/photos --json

  # Read the tree from the configured bucket and store the run
  photo-sync reconcile --source bucket --prefix family --save`,
	Args: cobra.MaximumNArgs(2),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileFlags.source, "source", "", "Photo source: fs or bucket (default from config)")
	reconcileCmd.Flags().StringVar(&reconcileFlags.prefix, "prefix", "", "Object key prefix holding the day folders (bucket source)")
	reconcileCmd.Flags().IntVar(&reconcileFlags.workers, "workers", 0, "Concurrent workers (default one per CPU)")
	reconcileCmd.Flags().BoolVar(&jsonOutput, "json", false, "Also write the report to reconcile_<unix>.json")
	reconcileCmd.Flags().BoolVar(&saveRun, "save", false, "Store the run in the history database")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, l, err := loadApp(reconcileFlags, args)
	if err != nil {
		return err
	}
	defer l.Sync()

	provider, err := newProvider(cfg, l)
	if err != nil {
		return err
	}

	l.Info("Starting reconciliation",
		zap.String("owner", cfg.Reconcile.Owner),
		zap.String("source", provider.Name()),
	)

	started := time.Now()
	result, err := newEngine(cfg, l).ReconcileAll(ctx, provider)
	if err != nil {
		return err
	}
	took := time.Since(started)

	if err := report.Render(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	summary := result.Summary()
	l.Info("Reconciliation complete",
		zap.Int("days", summary.TotalDays),
		zap.Int("days_with_missing", summary.DaysWithMissing),
		zap.Int("missing_photos", summary.MissingPhotos),
		zap.Duration("took", took),
	)

	if jsonOutput {
		filename := fmt.Sprintf("reconcile_%d.json", started.Unix())
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()

		if err := report.WriteJSON(f, report.NewDocument(result, provider.Name(), started)); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
		l.Info("Report written", zap.String("file", filename))
	}

	if saveRun || cfg.History.Enabled {
		store, err := openHistory(cfg, l)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		run := history.NewRun(result, provider.Name(), started, took)
		if err := store.Save(ctx, run); err != nil {
			return err
		}
		l.Info("Run saved", zap.String("run_id", run.ID))
	}

	return nil
}
