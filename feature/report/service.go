package report

import (
	"context"

	"photo-sync/core/reconcile"

	"go.uber.org/zap"
)

// Service serves reconciliation results of one owner and source, reusing a
// result until the cache TTL runs out.
type Service struct {
	engine   *reconcile.Engine
	provider reconcile.Provider
	cache    *reconcile.Cache
	logger   *zap.Logger
}

// NewService creates a new report service.
func NewService(engine *reconcile.Engine, provider reconcile.Provider, cache *reconcile.Cache, logger *zap.Logger) *Service {
	return &Service{
		engine:   engine,
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
}

// Source returns the provider's name.
func (s *Service) Source() string {
	return s.provider.Name()
}

// Reconcile returns the current result. refresh discards any cached result first.
func (s *Service) Reconcile(ctx context.Context, refresh bool) (*reconcile.CachedResult, error) {
	if refresh {
		s.cache.Invalidate(s.engine, s.provider)
	}
	return s.cache.GetOrBuild(ctx, s.engine, s.provider)
}
