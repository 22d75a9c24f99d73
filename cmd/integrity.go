package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"photo-sync/core/reconcile"
	"photo-sync/feature/history"
	"photo-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	integrityFlags sourceFlags
	schemaCheck    bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity [owner] [root]",
	Short: "Check the photo tree layout",
	Long: `Reports days that have no folder for the owner, day folders with no user
folders and user folders with no photos. With --schema, also verifies the
history database tables.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runIntegrity,
}

func init() {
	integrityCmd.Flags().StringVar(&integrityFlags.source, "source", "", "Photo source: fs or bucket (default from config)")
	integrityCmd.Flags().StringVar(&integrityFlags.prefix, "prefix", "", "Object key prefix holding the day folders (bucket source)")
	integrityCmd.Flags().BoolVar(&schemaCheck, "schema", false, "Also verify the history database schema")

	RootCmd.AddCommand(integrityCmd)
}

func runIntegrity(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, l, err := loadApp(integrityFlags, args)
	if err != nil {
		return err
	}
	defer l.Sync()

	provider, err := newProvider(cfg, l)
	if err != nil {
		return err
	}

	var store *history.Store
	if schemaCheck {
		if store, err = openHistory(cfg, l); err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
	}

	svc := integrity.NewService(provider, reconcile.UserLabel(cfg.Reconcile.Owner), store, l)
	out := map[string]any{}

	layout, err := svc.CheckLayout(ctx)
	if err != nil {
		return err
	}
	out["layout"] = layout
	if layout.OK() {
		l.Info("Layout check passed", zap.Int("days", layout.Days))
	}

	if schemaCheck {
		schema, err := svc.CheckSchema()
		if err != nil {
			return err
		}
		out["schema"] = schema
		if !schema.Matched {
			l.Warn("History schema does not match")
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
