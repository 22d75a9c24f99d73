package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProvider counts how many snapshots were taken.
type countingProvider struct {
	name  string
	calls atomic.Int32
	err   error
}

func (p *countingProvider) Name() string { return p.name }

func (p *countingProvider) Snapshot(ctx context.Context) (Snapshot, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return sampleSnapshot(), nil
}

func TestCachedResult_IsExpired(t *testing.T) {
	tests := []struct {
		name  string
		entry CachedResult
		want  bool
	}{
		{"ZeroTTL", CachedResult{Built: time.Now(), TTL: 0}, true},
		{"Fresh", CachedResult{Built: time.Now(), TTL: time.Minute}, false},
		{"Stale", CachedResult{Built: time.Now().Add(-2 * time.Minute), TTL: time.Minute}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.IsExpired())
		})
	}
}

func TestCache_GetOrBuild(t *testing.T) {
	engine := NewEngine("My", Options{})
	provider := &countingProvider{name: "fs:/photos"}
	cache := NewCache(time.Minute)

	first, err := cache.GetOrBuild(context.Background(), engine, provider)
	require.NoError(t, err)
	require.NotNil(t, first.Result)
	assert.Len(t, first.Result.Days, 3)

	second, err := cache.GetOrBuild(context.Background(), engine, provider)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), provider.calls.Load())

	cache.Invalidate(engine, provider)
	third, err := cache.GetOrBuild(context.Background(), engine, provider)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, int32(2), provider.calls.Load())
}

// TestCache_ZeroTTL tests that a zero TTL rebuilds on every call.
func TestCache_ZeroTTL(t *testing.T) {
	engine := NewEngine("My", Options{})
	provider := &countingProvider{name: "fs:/photos"}
	cache := NewCache(0)

	for i := 0; i < 3; i++ {
		_, err := cache.GetOrBuild(context.Background(), engine, provider)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), provider.calls.Load())
}

// TestCache_KeyedByOwnerAndProvider tests that different owners do not share entries.
func TestCache_KeyedByOwnerAndProvider(t *testing.T) {
	provider := &countingProvider{name: "fs:/photos"}
	cache := NewCache(time.Minute)

	mine, err := cache.GetOrBuild(context.Background(), NewEngine("My", Options{}), provider)
	require.NoError(t, err)
	levs, err := cache.GetOrBuild(context.Background(), NewEngine("Lev", Options{}), provider)
	require.NoError(t, err)

	assert.Equal(t, UserLabel("My"), mine.Result.Owner)
	assert.Equal(t, UserLabel("Lev"), levs.Result.Owner)
	assert.Equal(t, int32(2), provider.calls.Load())
	assert.Equal(t, "My|fs:/photos", CacheKey(NewEngine("My", Options{}), provider))
}

// TestCache_ErrorNotCached tests that failed builds are retried.
func TestCache_ErrorNotCached(t *testing.T) {
	engine := NewEngine("My", Options{})
	provider := &countingProvider{name: "bucket:photos", err: errors.New("connection refused")}
	cache := NewCache(time.Minute)

	_, err := cache.GetOrBuild(context.Background(), engine, provider)
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)

	provider.err = nil
	entry, err := cache.GetOrBuild(context.Background(), engine, provider)
	require.NoError(t, err)
	assert.NotNil(t, entry.Result)
	assert.Equal(t, int32(2), provider.calls.Load())
}

func TestCache_ConcurrentCallers(t *testing.T) {
	engine := NewEngine("My", Options{})
	provider := &countingProvider{name: "fs:/photos"}
	cache := NewCache(time.Minute)

	var wg sync.WaitGroup
	results := make([]*CachedResult, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, err := cache.GetOrBuild(context.Background(), engine, provider)
			assert.NoError(t, err)
			results[i] = entry
		}()
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.Len(t, r.Result.Days, 3)
	}
	// Concurrent misses collapse, later callers hit the stored entry
	assert.LessOrEqual(t, provider.calls.Load(), int32(len(results)))
	assert.GreaterOrEqual(t, provider.calls.Load(), int32(1))
}
