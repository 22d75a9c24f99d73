package integrity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"photo-sync/core/database"
	"photo-sync/core/reconcile"
	"photo-sync/feature/history"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleProvider() reconcile.Provider {
	return reconcile.StaticProvider{
		reconcile.NewDay(2024, time.April, 15): {
			{User: "My", Photos: reconcile.NewCollection("1")},
		},
		reconcile.NewDay(2024, time.April, 16): {
			{User: "Lev", Photos: reconcile.NewCollection("2")},
		},
	}
}

func setupTestApp(t *testing.T, p reconcile.Provider, withStore bool) *fiber.App {
	var store *history.Store
	if withStore {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		store = history.NewStore(db, zap.NewNop())
		require.NoError(t, store.Migrate())
	}

	feature := NewFeature(p, "My", store, zap.NewNop())
	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandleLayoutCheck(t *testing.T) {
	app := setupTestApp(t, sampleProvider(), false)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/layout", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []any{"2024-04-16"}, body["days_without_owner"])
	assert.EqualValues(t, 2, body["days"])
}

func TestHandleLayoutCheck_ProviderError(t *testing.T) {
	failing := reconcile.ProviderFunc(func(ctx context.Context) (reconcile.Snapshot, error) {
		return nil, errors.New("cannot read directory: /photos")
	})
	app := setupTestApp(t, failing, false)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/layout", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleSchemaCheck(t *testing.T) {
	t.Run("WithHistory", func(t *testing.T) {
		app := setupTestApp(t, sampleProvider(), true)

		resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["matched"])
	})

	t.Run("WithoutHistory", func(t *testing.T) {
		app := setupTestApp(t, sampleProvider(), false)

		resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
	})
}

func TestHandleIntegrityCheck(t *testing.T) {
	tests := []struct {
		name       string
		withStore  bool
		wantSchema bool
	}{
		{"LayoutOnly", false, false},
		{"LayoutAndSchema", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(t, sampleProvider(), tt.withStore)

			resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Contains(t, body, "layout")
			_, hasSchema := body["schema"]
			assert.Equal(t, tt.wantSchema, hasSchema)
		})
	}
}
