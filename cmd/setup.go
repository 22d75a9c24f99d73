package cmd

import (
	"fmt"

	"photo-sync/core/config"
	"photo-sync/core/database"
	"photo-sync/core/logger"
	"photo-sync/core/reconcile"
	"photo-sync/core/storage"
	"photo-sync/feature/history"
	"photo-sync/feature/provider/bucket"
	"photo-sync/feature/provider/fs"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// sourceFlags are the reconcile settings every command can override.
type sourceFlags struct {
	source  string
	prefix  string
	workers int
}

// apply overrides cfg with the positional [owner] [root] arguments and the
// flags that were set.
func (f sourceFlags) apply(cfg *reconcile.Config, args []string) {
	if len(args) > 0 {
		cfg.Owner = args[0]
	}
	if len(args) > 1 {
		cfg.Root = args[1]
	}
	if f.source != "" {
		cfg.Source = f.source
	}
	if f.prefix != "" {
		cfg.Prefix = f.prefix
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
}

// loadApp loads and validates the configuration and builds the logger.
func loadApp(flags sourceFlags, args []string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	flags.apply(&cfg.Reconcile, args)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// newProvider builds the photo provider selected by cfg.Reconcile.Source.
func newProvider(cfg *config.Config, l *zap.Logger) (reconcile.Provider, error) {
	switch cfg.Reconcile.Source {
	case reconcile.SourceFS:
		return fs.NewProvider(afero.NewOsFs(), cfg.Reconcile.Root, l).WithWorkers(cfg.Reconcile.Workers), nil
	case reconcile.SourceBucket:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		return bucket.NewProvider(client, cfg.Storage.Bucket, cfg.Reconcile.Prefix, l).WithWorkers(cfg.Reconcile.Workers), nil
	default:
		return nil, fmt.Errorf("unknown photo source %q", cfg.Reconcile.Source)
	}
}

// newEngine builds the engine for the configured owner, reporting findings at debug level.
func newEngine(cfg *config.Config, l *zap.Logger) *reconcile.Engine {
	return reconcile.NewEngine(reconcile.UserLabel(cfg.Reconcile.Owner), reconcile.Options{
		Workers:  cfg.Reconcile.Workers,
		Reporter: reconcile.LogReporter(l),
		Logger:   l,
	})
}

// openHistory connects to the history database and migrates it.
func openHistory(cfg *config.Config, l *zap.Logger) (*history.Store, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	store := history.NewStore(db, l)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}
