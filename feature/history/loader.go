package history

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	enabled bool
	store   *Store
	handler *Handler
}

// NewFeature creates the history feature. It is disabled when cfg turns it
// off or when no database is available.
func NewFeature(cfg Config, db *gorm.DB, logger *zap.Logger) *Feature {
	f := &Feature{enabled: cfg.Enabled && db != nil}
	if db != nil {
		f.store = NewStore(db, logger)
		f.handler = NewHandler(f.store)
	}
	return f
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "history"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Store returns the feature's store, or nil without a database.
func (f *Feature) Store() *Store {
	return f.store
}

// Load migrates the tables and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.store.Migrate(); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}
