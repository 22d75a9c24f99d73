package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"photo-sync/core/database"
	"photo-sync/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrRunNotFound is returned by Get for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// DefaultLimit is the number of runs List returns when no limit is given.
const DefaultLimit = 20

// Store persists reconciliation runs.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Migrate creates or updates the history tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&Run{}, &Finding{}); err != nil {
		return fmt.Errorf("migrate history tables: %w", err)
	}
	return nil
}

// Verify returns, per table, the expected columns the database lacks.
// An empty map means the schema matches.
func (s *Store) Verify() (map[string][]string, error) {
	tables := make([]string, 0, len(Columns))
	for table := range Columns {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	missing := make(map[string][]string)
	for _, table := range tables {
		cols, err := database.MissingColumns(s.db, table, Columns[table]...)
		if err != nil {
			return nil, err
		}
		if len(cols) > 0 {
			missing[table] = cols
		}
	}
	return missing, nil
}

// NewRun converts a result into a run record, findings ordered by day, peer and photo.
func NewRun(result *reconcile.Result, source string, started time.Time, took time.Duration) *Run {
	summary := result.Summary()
	run := &Run{
		ID:              uuid.NewString(),
		Owner:           result.Owner.String(),
		Source:          source,
		StartedAt:       started.UTC(),
		DurationMs:      took.Milliseconds(),
		TotalDays:       summary.TotalDays,
		DaysWithMissing: summary.DaysWithMissing,
		MissingPhotos:   summary.MissingPhotos,
	}

	for _, day := range result.Days {
		for _, peer := range day.Missing.Peers() {
			for _, id := range day.Missing[peer].IDs() {
				run.Findings = append(run.Findings, Finding{
					RunID:   run.ID,
					Day:     day.Day.String(),
					Peer:    peer.String(),
					PhotoID: id.String(),
				})
			}
		}
	}
	return run
}

// Save stores run and its findings in one transaction.
func (s *Store) Save(ctx context.Context, run *Run) error {
	err := s.db.WithContext(ctx).
		Session(&gorm.Session{CreateBatchSize: 500}).
		Create(run).Error
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}

	s.logger.Debug("Saved reconciliation run",
		zap.String("run_id", run.ID),
		zap.Int("findings", len(run.Findings)),
	)
	return nil
}

// List returns the most recent runs without their findings, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var runs []Run
	err := s.db.WithContext(ctx).
		Order("started_at desc").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run with its findings.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).
		Preload("Findings", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("id = ?", id).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &run, nil
}
