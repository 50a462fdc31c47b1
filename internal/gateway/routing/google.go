package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
)

const fieldMask = "routes.duration,routes.distanceMeters,routes.polyline.encodedPolyline"

// httpStatusError is a non-2xx answer from the provider.
type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("routes api status %d: %s", e.Code, e.Body)
}

// GoogleClient computes routes with the Google Routes API.
type GoogleClient struct {
	session *http.Client
	apiKey  string
	baseURL string
}

// NewGoogleClient returns a client. An empty apiKey is allowed; every call then reports the provider unavailable.
func NewGoogleClient(apiKey, baseURL string, timeout time.Duration) *GoogleClient {
	return &GoogleClient{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type waypoint struct {
	Location struct {
		LatLng latLng `json:"latLng"`
	} `json:"location"`
}

type routeModifiers struct {
	AvoidTolls    bool `json:"avoidTolls"`
	AvoidHighways bool `json:"avoidHighways"`
	AvoidFerries  bool `json:"avoidFerries"`
}

type computeRoutesRequest struct {
	Origin                   waypoint       `json:"origin"`
	Destination              waypoint       `json:"destination"`
	TravelMode               string         `json:"travelMode"`
	RoutingPreference        string         `json:"routingPreference,omitempty"`
	ComputeAlternativeRoutes bool           `json:"computeAlternativeRoutes"`
	RouteModifiers           routeModifiers `json:"routeModifiers"`
	LanguageCode             string         `json:"languageCode"`
	Units                    string         `json:"units"`
}

type computeRoutesResponse struct {
	Routes []struct {
		DistanceMeters int    `json:"distanceMeters"`
		Duration       string `json:"duration"`
		Polyline       struct {
			EncodedPolyline string `json:"encodedPolyline"`
		} `json:"polyline"`
	} `json:"routes"`
}

func point(c domain.Coordinates) waypoint {
	var w waypoint
	w.Location.LatLng = latLng{Latitude: c.Lat, Longitude: c.Lng}
	return w
}

func newComputeRoutesRequest(origin, dest domain.Coordinates, prefs domain.RoutePreferences) computeRoutesRequest {
	req := computeRoutesRequest{
		Origin:      point(origin),
		Destination: point(dest),
		TravelMode:  prefs.TravelMode,
		RouteModifiers: routeModifiers{
			AvoidTolls:    prefs.AvoidTolls,
			AvoidHighways: prefs.AvoidHighways,
			AvoidFerries:  prefs.AvoidFerries,
		},
		LanguageCode: "en-US",
		Units:        "METRIC",
	}
	if req.TravelMode == "" {
		req.TravelMode = "DRIVE"
	}
	// routing preference is only accepted for motorised modes
	if req.TravelMode == "DRIVE" || req.TravelMode == "TWO_WHEELER" {
		req.RoutingPreference = prefs.RoutingPreference
	}
	return req
}

// ComputeRoute asks the provider for a route from origin to dest.
func (g *GoogleClient) ComputeRoute(ctx context.Context, origin, dest domain.Coordinates, prefs domain.RoutePreferences) (domain.RouteEstimate, error) {
	if g.apiKey == "" {
		return domain.RouteEstimate{}, fmt.Errorf("%w: api key not configured", apperr.ErrProviderUnavailable)
	}

	payload, err := json.Marshal(newComputeRoutesRequest(origin, dest, prefs))
	if err != nil {
		return domain.RouteEstimate{}, fmt.Errorf("marshal route request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(payload))
	if err != nil {
		return domain.RouteEstimate{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", g.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := g.session.Do(req)
	if err != nil {
		return domain.RouteEstimate{}, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return domain.RouteEstimate{}, classify(&httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))})
	}

	var out computeRoutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.RouteEstimate{}, fmt.Errorf("decode route response: %w", err)
	}
	if len(out.Routes) == 0 {
		return domain.RouteEstimate{}, fmt.Errorf("%w: no route returned", apperr.ErrProviderUnavailable)
	}

	route := out.Routes[0]
	seconds, err := parseDuration(route.Duration)
	if err != nil {
		return domain.RouteEstimate{}, err
	}
	if seconds <= 0 {
		return domain.RouteEstimate{}, fmt.Errorf("route duration %q is not positive", route.Duration)
	}

	return domain.RouteEstimate{
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: seconds,
		Polyline:        route.Polyline.EncodedPolyline,
		Live:            true,
	}, nil
}

// parseDuration reads protobuf JSON durations such as "1234s" or "12.5s".
func parseDuration(s string) (int, error) {
	raw, ok := strings.CutSuffix(strings.TrimSpace(s), "s")
	if !ok {
		return 0, fmt.Errorf("unexpected route duration %q", s)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse route duration %q: %w", s, err)
	}
	return int(f), nil
}

// classify marks failures meaning the provider cannot answer right now.
func classify(err error) error {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch {
		case he.Code == http.StatusUnauthorized, he.Code == http.StatusForbidden,
			he.Code == http.StatusTooManyRequests, he.Code >= 500:
			return fmt.Errorf("%w: %w", apperr.ErrProviderUnavailable, err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", apperr.ErrProviderUnavailable, err)
	}
	return err
}
