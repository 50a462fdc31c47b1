package routing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
)

var (
	nairobi = domain.Coordinates{Lat: -1.286389, Lng: 36.817223}
	westIn  = domain.Coordinates{Lat: -1.30, Lng: 36.80}
)

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleClient_ComputeRoute_Success(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "key-1", r.Header.Get("X-Goog-Api-Key"))
		assert.Equal(t, fieldMask, r.Header.Get("X-Goog-FieldMask"))

		var body computeRoutesRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "DRIVE", body.TravelMode)
		assert.Equal(t, "TRAFFIC_AWARE_OPTIMAL", body.RoutingPreference)
		assert.Equal(t, nairobi.Lat, body.Origin.Location.LatLng.Latitude)
		assert.Equal(t, westIn.Lng, body.Destination.Location.LatLng.Longitude)
		assert.True(t, body.RouteModifiers.AvoidTolls)

		_, _ = w.Write([]byte(`{"routes":[{"distanceMeters":2440,"duration":"301s","polyline":{"encodedPolyline":"abc"}}]}`))
	})

	prefs := domain.DefaultRoutePreferences()
	prefs.AvoidTolls = true
	c := NewGoogleClient("key-1", srv.URL, time.Second)

	got, err := c.ComputeRoute(context.Background(), nairobi, westIn, prefs)
	require.NoError(t, err)
	require.Equal(t, domain.RouteEstimate{DistanceMeters: 2440, DurationSeconds: 301, Polyline: "abc", Live: true}, got)
}

func TestGoogleClient_ComputeRoute_MissingKeySkipsCall(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := newServer(t, func(http.ResponseWriter, *http.Request) { atomic.AddInt32(&calls, 1) })

	_, err := NewGoogleClient("", srv.URL, time.Second).
		ComputeRoute(context.Background(), nairobi, westIn, domain.DefaultRoutePreferences())

	require.ErrorIs(t, err, apperr.ErrProviderUnavailable)
	require.Zero(t, atomic.LoadInt32(&calls))
}

func TestGoogleClient_ComputeRoute_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		unavailable bool
	}{
		{name: "server error", status: http.StatusServiceUnavailable, body: `{}`, unavailable: true},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`, unavailable: true},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, unavailable: true},
		{name: "no routes", status: http.StatusOK, body: `{"routes":[]}`, unavailable: true},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"bad"}`},
		{name: "undecodable body", status: http.StatusOK, body: `not json`},
		{name: "zero duration", status: http.StatusOK, body: `{"routes":[{"distanceMeters":10,"duration":"0s"}]}`},
		{name: "odd duration", status: http.StatusOK, body: `{"routes":[{"distanceMeters":10,"duration":"5m"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := NewGoogleClient("k", srv.URL, time.Second).
				ComputeRoute(context.Background(), nairobi, westIn, domain.DefaultRoutePreferences())

			require.Error(t, err)
			require.Equal(t, tt.unavailable, errors.Is(err, apperr.ErrProviderUnavailable), "err: %v", err)
		})
	}
}

func TestGoogleClient_ComputeRoute_NetworkErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewGoogleClient("k", url, time.Second).
		ComputeRoute(context.Background(), nairobi, westIn, domain.DefaultRoutePreferences())

	require.ErrorIs(t, err, apperr.ErrProviderUnavailable)
}

func TestNewComputeRoutesRequest_WalkOmitsRoutingPreference(t *testing.T) {
	t.Parallel()

	req := newComputeRoutesRequest(nairobi, westIn, domain.RoutePreferences{TravelMode: "WALK", RoutingPreference: "TRAFFIC_AWARE"})
	require.Empty(t, req.RoutingPreference)

	req = newComputeRoutesRequest(nairobi, westIn, domain.RoutePreferences{})
	require.Equal(t, "DRIVE", req.TravelMode)
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	got, err := parseDuration("1234s")
	require.NoError(t, err)
	require.Equal(t, 1234, got)

	got, err = parseDuration("12.9s")
	require.NoError(t, err)
	require.Equal(t, 12, got)

	_, err = parseDuration("")
	require.Error(t, err)
}
