package control

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietddude/newscatcher/internal/core/config"
	"github.com/vietddude/newscatcher/internal/core/domain"
)

func testConfig(baseURL string) *config.AppConfig {
	retries := 2
	return &config.AppConfig{
		API: config.APIConfig{BaseURL: baseURL, Timeout: time.Second},
		Monitor: config.MonitorConfig{
			HealthPath:   "/health",
			ProbeTimeout: 200 * time.Millisecond,
			Interval:     time.Hour,
		},
		Retry: config.RetryConfig{
			MaxRetries:   &retries,
			InitialDelay: time.Millisecond,
			MaxDelay:     10 * time.Millisecond,
		},
	}
}

func TestApp_LiveThenOffline(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.HealthReport{Status: "healthy"})
	})
	mux.HandleFunc("/news", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]domain.NewsItem{{ID: 7, Title: "Live"}})
	})
	backend := httptest.NewServer(mux)

	app, err := NewApp(testConfig(backend.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, app.Start(ctx, false))
	defer func() { _ = app.Stop(context.Background()) }()

	require.Eventually(t, func() bool {
		_, ok := app.Monitor().LastProbe()
		return ok
	}, 2*time.Second, 5*time.Millisecond)
	assert.True(t, app.Monitor().Reachable())

	res, err := app.News().ListNews(ctx, domain.NewsFilter{})
	require.NoError(t, err)
	assert.False(t, res.Offline)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 7, res.Items[0].ID)

	backend.Close()

	res, err = app.News().ListNews(ctx, domain.NewsFilter{})
	require.NoError(t, err)
	assert.True(t, res.Offline)
	assert.Len(t, res.Items, 5)
	assert.False(t, app.Monitor().Reachable())

	rec := httptest.NewRecorder()
	app.StatusHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewApp_RequiresConfig(t *testing.T) {
	_, err := NewApp(nil)
	require.Error(t, err)
}
