package reconcile

import (
	"context"
	"fmt"
)

// Provider supplies the per-day, per-user photo collections to reconcile.
// Implementations own traversal, hashing and date parsing; the engine only
// consumes the resulting Snapshot.
type Provider interface {
	// Name returns a short description of the source (e.g. "fs:/photos").
	Name() string

	// Snapshot enumerates every day and every user folder under the source.
	// Any failure aborts the whole snapshot.
	Snapshot(ctx context.Context) (Snapshot, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (Snapshot, error)

// Name implements Provider.
func (f ProviderFunc) Name() string {
	return "func"
}

// Snapshot implements Provider.
func (f ProviderFunc) Snapshot(ctx context.Context) (Snapshot, error) {
	return f(ctx)
}

// StaticProvider serves a fixed snapshot.
type StaticProvider Snapshot

// Name implements Provider.
func (p StaticProvider) Name() string {
	return "static"
}

// Snapshot implements Provider.
func (p StaticProvider) Snapshot(ctx context.Context) (Snapshot, error) {
	return Snapshot(p), nil
}

// ProviderError reports a failure of the upstream provider. It wraps the
// provider's own error, which stays reachable through errors.As.
type ProviderError struct {
	// Source is the provider's Name.
	Source string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("photo provider %s: %v", e.Source, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
