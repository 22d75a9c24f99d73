package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"photo-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	day15 = reconcile.NewDay(2024, time.April, 15)
	day16 = reconcile.NewDay(2024, time.April, 16)
)

func sampleSnapshot() reconcile.Snapshot {
	return reconcile.Snapshot{
		day15: {
			{User: "My", Photos: reconcile.NewCollection("1", "2")},
			{User: "Lev", Photos: reconcile.NewCollection("1", "2")},
		},
		day16: {
			{User: "My", Photos: reconcile.NewCollection("1", "2", "3")},
			{User: "Lev", Photos: reconcile.NewCollection("6")},
			{User: "Denis", Photos: reconcile.NewCollection("3", "5", "6")},
		},
	}
}

func sampleResult() *reconcile.Result {
	return reconcile.NewEngine("My", reconcile.Options{}).ReconcileSnapshot(sampleSnapshot())
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{
		"For day: '2024-04-15' no difference have been found.",
		`For day: '2024-04-16', you are missing: ["5", "6"] - we can find it in 'Denis' collection.`,
		`For day: '2024-04-16', you are missing: ["6"] - we can find it in 'Lev' collection.`,
	}, Lines(sampleResult()))

	assert.Empty(t, Lines(&reconcile.Result{Owner: "My"}))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult()))
	assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestWriteJSON(t *testing.T) {
	generated := time.Date(2024, time.April, 17, 8, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewDocument(sampleResult(), "fs:/photos", generated)))

	assert.JSONEq(t, `{
		"owner": "My",
		"source": "fs:/photos",
		"generated_at": "2024-04-17T08:00:00Z",
		"summary": {"total_days": 2, "days_with_missing": 1, "missing_photos": 3},
		"days": [
			{"day": "2024-04-15", "missing": {}},
			{"day": "2024-04-16", "missing": {"Denis": ["5", "6"], "Lev": ["6"]}}
		]
	}`, buf.String())
}

type countingProvider struct {
	calls atomic.Int32
	err   error
}

func (p *countingProvider) Name() string { return "static" }

func (p *countingProvider) Snapshot(ctx context.Context) (reconcile.Snapshot, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return sampleSnapshot(), nil
}

func setupTestApp(t *testing.T, p reconcile.Provider) *fiber.App {
	app := fiber.New()
	engine := reconcile.NewEngine("My", reconcile.Options{})
	feature := NewFeature(engine, p, reconcile.NewCache(time.Minute), zap.NewNop())
	assert.Equal(t, "report", feature.Name())
	assert.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandleReconcile(t *testing.T) {
	p := &countingProvider{}
	app := setupTestApp(t, p)

	resp, err := app.Test(httptest.NewRequest("GET", "/reconcile", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var doc Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, reconcile.UserLabel("My"), doc.Owner)
	assert.Equal(t, "static", doc.Source)
	assert.Equal(t, 3, doc.Summary.MissingPhotos)
	require.Len(t, doc.Days, 2)
	assert.Equal(t, day16, doc.Days[1].Day)

	// Served from cache
	_, err = app.Test(httptest.NewRequest("GET", "/reconcile", nil))
	require.NoError(t, err)
	assert.Equal(t, int32(1), p.calls.Load())

	_, err = app.Test(httptest.NewRequest("GET", "/reconcile?refresh=true", nil))
	require.NoError(t, err)
	assert.Equal(t, int32(2), p.calls.Load())
}

func TestHandleDay(t *testing.T) {
	app := setupTestApp(t, &countingProvider{})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantPeers  int
	}{
		{"WithMissing", "/reconcile/2024-04-16", 200, 2},
		{"NoDifference", "/reconcile/2024-04-15", 200, 0},
		{"NotScanned", "/reconcile/2024-04-17", 404, 0},
		{"BadDay", "/reconcile/yesterday", 400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != 200 {
				return
			}

			var body struct {
				Day     string              `json:"day"`
				Missing map[string][]string `json:"missing"`
				Lines   []string            `json:"lines"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Len(t, body.Missing, tt.wantPeers)
			assert.NotEmpty(t, body.Lines)
		})
	}
}

func TestHandleReconcile_ProviderError(t *testing.T) {
	app := setupTestApp(t, &countingProvider{err: errors.New("cannot read directory: /photos")})

	resp, err := app.Test(httptest.NewRequest("GET", "/reconcile", nil))
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "cannot read directory: /photos")
}
