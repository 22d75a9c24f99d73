package integrity

import (
	"context"
	"fmt"

	"photo-sync/core/reconcile"
	"photo-sync/feature/history"
	"photo-sync/feature/integrity/checks"

	"go.uber.org/zap"
)

// Service handles integrity checks.
type Service struct {
	provider reconcile.Provider
	owner    reconcile.UserLabel
	store    *history.Store
	logger   *zap.Logger
}

// NewService creates a new integrity service. store may be nil when no
// history database is configured.
func NewService(provider reconcile.Provider, owner reconcile.UserLabel, store *history.Store, logger *zap.Logger) *Service {
	return &Service{
		provider: provider,
		owner:    owner,
		store:    store,
		logger:   logger,
	}
}

// CheckLayout scans the provider and reports layout problems.
func (s *Service) CheckLayout(ctx context.Context) (*checks.LayoutReport, error) {
	snapshot, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, &reconcile.ProviderError{Source: s.provider.Name(), Err: err}
	}

	report := checks.CheckLayout(snapshot, s.owner)
	if !report.OK() {
		s.logger.Warn("Photo layout has problems",
			zap.Int("days_without_owner", len(report.DaysWithoutOwner)),
			zap.Int("empty_days", len(report.EmptyDays)),
			zap.Int("empty_folders", len(report.EmptyFolders)),
		)
	}
	return report, nil
}

// CheckSchema verifies the history tables.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.store == nil {
		return nil, fmt.Errorf("history is not enabled")
	}
	return checks.CheckHistorySchema(s.store)
}
