package travel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/itinera/internal/domain"
)

func matrixServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func TestDurationRoundsUpMinutes(t *testing.T) {
	client := matrixServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sources_to_targets", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req matrixRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Sources, 1)
		assert.Equal(t, "pedestrian", req.Costing)

		w.Write([]byte(`{"sources_to_targets":[[{"time":90}]]}`))
	})

	min, err := client.Duration(context.Background(),
		domain.Point{Lat: 43.0, Lng: 141.3}, domain.Point{Lat: 43.1, Lng: 141.4},
		domain.ModeWalk)
	require.NoError(t, err)
	assert.Equal(t, 2, min) // 90s rounds up
}

func TestDurationCostingByMode(t *testing.T) {
	var got []string
	client := matrixServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req matrixRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got = append(got, req.Costing)
		w.Write([]byte(`{"sources_to_targets":[[{"time":600}]]}`))
	})

	a, b := domain.Point{Lat: 43.0, Lng: 141.3}, domain.Point{Lat: 43.1, Lng: 141.4}
	for _, mode := range []domain.TravelMode{domain.ModeDrive, domain.ModeMetro, domain.ModeTransit, domain.ModeWalk} {
		_, err := client.Duration(context.Background(), a, b, mode)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"auto", "multimodal", "multimodal", "pedestrian"}, got)
}

func TestDurationServerError(t *testing.T) {
	client := matrixServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, err := client.Duration(context.Background(),
		domain.Point{}, domain.Point{}, domain.ModeWalk)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned 503")
}

func TestDurationUnroutablePair(t *testing.T) {
	client := matrixServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sources_to_targets":[[{"time":null}]]}`))
	})

	_, err := client.Duration(context.Background(),
		domain.Point{}, domain.Point{}, domain.ModeWalk)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no route")
}

func TestDurationTimeout(t *testing.T) {
	client := matrixServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"sources_to_targets":[[{"time":60}]]}`))
	})
	client.cfg.Timeout = 20 * time.Millisecond

	_, err := client.Duration(context.Background(),
		domain.Point{}, domain.Point{}, domain.ModeWalk)
	require.Error(t, err)
}
