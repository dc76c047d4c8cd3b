package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	t.Run("zero distance", func(t *testing.T) {
		assert.InDelta(t, 0, Haversine(52.52, 13.405, 52.52, 13.405), 1e-9)
	})

	t.Run("berlin to paris", func(t *testing.T) {
		// Berlin Mitte to central Paris is roughly 878 km great-circle
		km := Haversine(52.52, 13.405, 48.8566, 2.3522)
		assert.InDelta(t, 878, km, 5)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Haversine(52.52, 13.405, 48.8566, 2.3522)
		b := Haversine(48.8566, 2.3522, 52.52, 13.405)
		assert.InDelta(t, a, b, 1e-9)
	})
}

func TestDistanceWithoutToken(t *testing.T) {
	geo := NewGeoService("", "")

	km, err := geo.Distance(context.Background(), 52.52, 13.405, 48.8566, 2.3522)
	require.NoError(t, err)
	assert.InDelta(t, Haversine(52.52, 13.405, 48.8566, 2.3522), km, 1e-9)
}

func TestDistanceFromMapbox(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/directions-matrix/v1/mapbox/driving/")
		assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"Ok","distances":[[1043500.2]]}`))
	}))
	defer server.Close()

	geo := NewGeoServiceWithBaseURLs("test-token", "", server.URL, "")

	km, err := geo.Distance(context.Background(), 52.52, 13.405, 48.8566, 2.3522)
	require.NoError(t, err)
	assert.InDelta(t, 1043.5002, km, 1e-6)
}

func TestDistanceFallsBackOnMapboxError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"InvalidInput","distances":[]}`))
	}))
	defer server.Close()

	geo := NewGeoServiceWithBaseURLs("test-token", "", server.URL, "")

	km, err := geo.Distance(context.Background(), 52.52, 13.405, 48.8566, 2.3522)
	require.NoError(t, err)
	assert.InDelta(t, Haversine(52.52, 13.405, 48.8566, 2.3522), km, 1e-9)
}

func TestDistanceFallsBackOnUnreachableMapbox(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	geo := NewGeoServiceWithBaseURLs("test-token", "", server.URL, "")

	km, err := geo.Distance(context.Background(), 52.52, 13.405, 48.8566, 2.3522)
	require.NoError(t, err)
	assert.InDelta(t, Haversine(52.52, 13.405, 48.8566, 2.3522), km, 1e-9)
}

func TestReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"Unter den Linden 1, Berlin"}]}`))
	}))
	defer server.Close()

	geo := NewGeoServiceWithBaseURLs("", "test-key", "", server.URL)

	address, err := geo.ReverseGeocode(context.Background(), 52.52, 13.405)
	require.NoError(t, err)
	assert.Equal(t, "Unter den Linden 1, Berlin", address)
}

func TestReverseGeocodeErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		geo := NewGeoService("", "")
		_, err := geo.ReverseGeocode(context.Background(), 52.52, 13.405)
		assert.Error(t, err)
	})

	t.Run("zero results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
		}))
		defer server.Close()

		geo := NewGeoServiceWithBaseURLs("", "test-key", "", server.URL)
		_, err := geo.ReverseGeocode(context.Background(), 52.52, 13.405)
		assert.Error(t, err)
	})
}
