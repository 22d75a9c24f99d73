package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"photo-sync/core/database"
	"photo-sync/core/loader"
	"photo-sync/core/logger"
	"photo-sync/core/middleware/auth"
	"photo-sync/core/middleware/rayid"
	"photo-sync/core/reconcile"
	"photo-sync/feature/history"
	"photo-sync/feature/integrity"
	"photo-sync/feature/report"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var startFlags sourceFlags

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the report API server",
	Long: `Starts the HTTP server serving reconciliation reports, layout checks and,
when a database is configured, the run history.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadApp(startFlags, nil)
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		provider, err := newProvider(cfg, logg)
		if err != nil {
			return err
		}

		// Database is optional, history is only served when it connects
		var db *gorm.DB
		if cfg.History.Enabled {
			if conn, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Optional database connection failed", zap.Error(err))
			} else {
				db = conn
				logg.Info("Connected to history database", zap.String("driver", cfg.Database.Driver))
			}
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		engine := newEngine(cfg, logg)
		cache := reconcile.NewCache(cfg.Reconcile.CacheTTL())
		historyFeature := history.NewFeature(cfg.History, db, logg)

		mgr := loader.NewManager()
		mgr.Register(report.NewFeature(engine, provider, cache, logg))
		mgr.Register(integrity.NewFeature(provider, engine.Owner(), historyFeature.Store(), logg))
		mgr.Register(historyFeature)

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		if !cfg.Server.AuthEnabled() {
			logg.Warn("No API key configured, the API is open")
		}

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("owner", cfg.Reconcile.Owner),
				zap.String("source", provider.Name()),
			)
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	startCmd.Flags().StringVar(&startFlags.source, "source", "", "Photo source: fs or bucket (default from config)")
	startCmd.Flags().StringVar(&startFlags.prefix, "prefix", "", "Object key prefix holding the day folders (bucket source)")
	startCmd.Flags().IntVar(&startFlags.workers, "workers", 0, "Concurrent workers (default one per CPU)")
	RootCmd.AddCommand(startCmd)
}
