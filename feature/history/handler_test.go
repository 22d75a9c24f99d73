package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"photo-sync/core/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *Store) {
	store := setupStore(t)
	app := fiber.New()
	NewHandler(store).RegisterRoutes(app)
	return app, store
}

func TestHandleList(t *testing.T) {
	app, store := setupTestApp(t)
	for i := 0; i < 3; i++ {
		run := NewRun(sampleResult(), "fs:/photos", time.Now().Add(time.Duration(i)*time.Minute), time.Second)
		require.NoError(t, store.Save(context.Background(), run))
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/history?limit=2", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Runs []Run `json:"runs"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Runs, 2)
	assert.Empty(t, body.Runs[0].Findings)
}

func TestHandleGet(t *testing.T) {
	app, store := setupTestApp(t)
	run := NewRun(sampleResult(), "fs:/photos", time.Now(), time.Second)
	require.NoError(t, store.Save(context.Background(), run))

	t.Run("Found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/history/"+run.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var got Run
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, run.ID, got.ID)
		assert.Len(t, got.Findings, 3)
	})

	t.Run("NotFound", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/history/unknown", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestHandleList_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	app := fiber.New()
	NewHandler(NewStore(db, zap.NewNop())).RegisterRoutes(app)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection lost"))

	resp, err := app.Test(httptest.NewRequest("GET", "/history", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestLoader(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	feature := NewFeature(Config{Enabled: true}, db, zap.NewNop())
	assert.Equal(t, "history", feature.Name())
	assert.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(fiber.New()))

	missing, err := feature.Store().Verify()
	require.NoError(t, err)
	assert.Empty(t, missing)

	assert.False(t, NewFeature(Config{Enabled: true}, nil, zap.NewNop()).IsEnabled())
	assert.False(t, NewFeature(Config{Enabled: false}, db, zap.NewNop()).IsEnabled())
}
