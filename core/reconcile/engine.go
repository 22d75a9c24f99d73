package reconcile

import (
	"context"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options controls how an Engine runs.
type Options struct {
	// Workers bounds how many days are reconciled concurrently.
	// If zero or negative, runtime.NumCPU() is used.
	Workers int

	// Reporter, if set, is notified of every non-empty per-peer result.
	Reporter Reporter

	// Logger receives engine diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Engine reconciles every day of a snapshot against one owner.
type Engine struct {
	owner    UserLabel
	workers  int
	reporter Reporter
	logger   *zap.Logger
}

// NewEngine creates an engine for the given owner.
func NewEngine(owner UserLabel, opts Options) *Engine {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return &Engine{
		owner:    owner,
		workers:  workers,
		reporter: opts.Reporter,
		logger:   l,
	}
}

// Owner returns the label the engine reconciles against.
func (e *Engine) Owner() UserLabel {
	return e.owner
}

// ReconcileAll fetches a snapshot from p and reconciles every day in it.
// A provider failure is returned as a *ProviderError and no partial result
// is produced.
func (e *Engine) ReconcileAll(ctx context.Context, p Provider) (*Result, error) {
	snapshot, err := p.Snapshot(ctx)
	if err != nil {
		return nil, &ProviderError{Source: p.Name(), Err: err}
	}
	return e.ReconcileSnapshot(snapshot), nil
}

// ReconcileSnapshot reconciles every day of an already materialized snapshot.
// The result holds one entry per day, in ascending order.
func (e *Engine) ReconcileSnapshot(s Snapshot) *Result {
	days := s.Days()
	results := make([]DayResult, len(days))

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			owner, peers := Partition(s[day], e.owner)
			if owner == nil {
				e.logger.Debug("Owner has no folder for day, treating collection as empty",
					zap.Stringer("day", day),
					zap.Stringer("owner", e.owner),
				)
				owner = NewCollection()
			}
			results[i] = DayResult{
				Day:     day,
				Missing: ReconcileDay(owner, peers, day, e.reporter),
			}
			return nil
		})
	}
	_ = g.Wait()

	return &Result{Owner: e.owner, Days: results}
}

// Partition splits one day's collections into the owner's collection and the
// peers' collections. owner is nil when no entry carries the owner label.
// Repeated labels are merged.
func Partition(users []UserCollection, ownerLabel UserLabel) (owner *Collection, peers map[UserLabel]*Collection) {
	peers = make(map[UserLabel]*Collection, len(users))
	for _, uc := range users {
		photos := uc.Photos
		if photos == nil {
			photos = NewCollection()
		}
		if uc.User == ownerLabel {
			if owner == nil {
				owner = photos
			} else {
				owner = owner.Union(photos)
			}
			continue
		}
		if existing, ok := peers[uc.User]; ok {
			peers[uc.User] = existing.Union(photos)
		} else {
			peers[uc.User] = photos
		}
	}
	return owner, peers
}

// ReconcileDay computes, for one day, the photos each peer has that the owner
// lacks. Peers that are empty, identical to the owner, or whose photos are all
// owned already do not appear in the result. day is used only for reporting.
func ReconcileDay(owner *Collection, peers map[UserLabel]*Collection, day Day, report Reporter) MissingPhotos {
	missing := make(MissingPhotos)

	labels := make([]UserLabel, 0, len(peers))
	for label := range peers {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	for _, peer := range labels {
		photos := peers[peer]
		if !photos.NeedsReconciliationWith(owner) {
			continue
		}

		diff := photos.Difference(owner)
		if diff.IsEmpty() {
			continue
		}

		missing[peer] = diff
		report.report(day, peer, diff)
	}

	return missing
}
