package reconcile

import (
	"go.uber.org/zap"
)

// Reporter observes each non-empty per-peer result as it is computed.
// It must not block for long and must be safe for concurrent use, since days
// are reconciled in parallel. Reporters never influence the result.
type Reporter func(day Day, peer UserLabel, missing *Collection)

// LogReporter returns a Reporter that writes one debug entry per finding.
func LogReporter(l *zap.Logger) Reporter {
	return func(day Day, peer UserLabel, missing *Collection) {
		l.Debug("Missing photos found",
			zap.Stringer("day", day),
			zap.Stringer("peer", peer),
			zap.Int("count", missing.Len()),
			zap.Any("photos", missing.IDs()),
		)
	}
}

func (r Reporter) report(day Day, peer UserLabel, missing *Collection) {
	if r != nil {
		r(day, peer, missing)
	}
}
