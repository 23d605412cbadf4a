package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_DoGetWithParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/news", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Politics", r.URL.Query().Get("category"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`[{"id":1}]`))
	}))
	defer server.Close()

	tr := NewHTTPTransport(server.URL+"/", 5*time.Second)
	resp, err := tr.Do(context.Background(), RequestDescriptor{
		ID:     "req-1",
		Method: "get",
		Path:   "/news",
		Params: map[string]string{"category": "Politics"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":1}]`, string(resp.Body))

	stats := tr.Stats()
	assert.Equal(t, 1, stats.Requests)
	assert.Zero(t, stats.Failures)
}

func TestHTTPTransport_DoPostBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Huntington, NY", body["location"])
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	tr := NewHTTPTransport(server.URL, 5*time.Second)
	_, err := tr.Do(context.Background(), RequestDescriptor{
		Method: http.MethodPost,
		Path:   "news/search",
		Body:   map[string]any{"location": "Huntington, NY"},
	})
	require.NoError(t, err)
}

func TestHTTPTransport_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Location not found"}`))
	}))
	defer server.Close()

	tr := NewHTTPTransport(server.URL, 5*time.Second)
	_, err := tr.Do(context.Background(), RequestDescriptor{Method: http.MethodGet, Path: "/news/search"})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "Location not found", statusErr.Detail())
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.False(t, IsNetworkError(err))
}

func TestHTTPTransport_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	tr := NewHTTPTransport(addr, time.Second)
	_, err := tr.Do(context.Background(), RequestDescriptor{Method: http.MethodGet, Path: "/news"})
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.Zero(t, StatusCode(err))
	assert.Equal(t, 1, tr.Stats().Failures)
}

func TestHTTPTransport_AttemptTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	tr := NewHTTPTransport(server.URL, 5*time.Second)
	_, err := tr.Do(context.Background(), RequestDescriptor{
		Method:  http.MethodGet,
		Path:    "/health",
		Timeout: 50 * time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestHTTPTransport_CallerCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := NewHTTPTransport(server.URL, 5*time.Second)
	_, err := tr.Do(ctx, RequestDescriptor{Method: http.MethodGet, Path: "/news"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsNetworkError(err))
}
