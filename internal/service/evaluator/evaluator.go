package evaluator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/geo"
	"courier-dispatch/internal/logx"
)

// Scoring weights. Lower scores are better.
const (
	loadPenalty     = 5.0
	noGPSPenalty    = 10.0
	stalePenalty    = 5.0
	priorityBoost   = 0.8
	defaultStale    = 5 * time.Minute
	defaultCallTime = 15 * time.Second
)

// Config holds evaluator settings.
type Config struct {
	AvgSpeedKmh     float64
	ProviderTimeout time.Duration
	StaleAfter      time.Duration
	// Depot is used when no depot is persisted in settings.
	Depot       domain.Coordinates
	Preferences domain.RoutePreferences
}

// Evaluator resolves routes and scores couriers for a destination.
type Evaluator struct {
	provider  RouteProvider
	settings  settingsReader
	cfg       Config
	logger    logx.Logger
	fallbacks counter
	now       func() time.Time
}

// New creates an Evaluator. provider may be nil, in which case live mode always degrades.
func New(provider RouteProvider, settings settingsReader, cfg Config, logger logx.Logger, fallbacks counter) *Evaluator {
	if cfg.AvgSpeedKmh <= 0 {
		cfg.AvgSpeedKmh = geo.DefaultSpeedKmh
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = defaultCallTime
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = defaultStale
	}
	if cfg.Preferences.TravelMode == "" {
		cfg.Preferences = domain.DefaultRoutePreferences()
	}
	return &Evaluator{
		provider:  provider,
		settings:  settings,
		cfg:       cfg,
		logger:    logger,
		fallbacks: fallbacks,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Mode picks the mode of a pass: manual when forced or switched on in settings.
// An unreadable setting counts as off.
func (e *Evaluator) Mode(ctx context.Context, forceManual bool) domain.Mode {
	if forceManual {
		return domain.ModeManual
	}
	if e.settings == nil {
		return domain.ModeLive
	}
	manual, err := e.settings.ManualMode(ctx)
	if err != nil {
		e.logger.Warn("read manual mode setting", logx.Err(err))
		return domain.ModeLive
	}
	if manual {
		return domain.ModeManual
	}
	return domain.ModeLive
}

// Depot returns the persisted business location, or the configured one.
func (e *Evaluator) Depot(ctx context.Context) domain.Coordinates {
	if e.settings == nil {
		return e.cfg.Depot
	}
	depot, err := e.settings.Depot(ctx)
	if err != nil {
		e.logger.Warn("read depot setting", logx.Err(err))
	}
	if depot == nil {
		return e.cfg.Depot
	}
	return *depot
}

// Resolve estimates the route from origin to dest.
// In live mode a provider that cannot answer degrades to straight-line math; any other provider error fails.
func (e *Evaluator) Resolve(ctx context.Context, mode domain.Mode, origin, dest domain.Coordinates) RouteResult {
	if mode == domain.ModeManual {
		return routeOK(geo.Estimate(origin, dest, e.cfg.AvgSpeedKmh))
	}
	if e.provider == nil {
		return e.degrade(origin, dest, "provider not configured")
	}

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.ProviderTimeout)
	defer cancel()

	est, err := e.provider.ComputeRoute(callCtx, origin, dest, e.cfg.Preferences)
	switch {
	case err == nil:
		est.Live = true
		return routeOK(est)
	case ctx.Err() != nil:
		return routeFailed(ctx.Err())
	case errors.Is(err, apperr.ErrProviderUnavailable), errors.Is(err, context.DeadlineExceeded):
		return e.degrade(origin, dest, err.Error())
	default:
		return routeFailed(err)
	}
}

func (e *Evaluator) degrade(origin, dest domain.Coordinates, reason string) RouteResult {
	if e.fallbacks != nil {
		e.fallbacks.Inc()
	}
	e.logger.Warn("route provider degraded",
		logx.Event("provider_degraded"),
		logx.String("origin", origin.String()),
		logx.String("destination", dest.String()),
		logx.String("reason", reason),
	)
	return routeDegraded(geo.Estimate(origin, dest, e.cfg.AvgSpeedKmh), reason)
}

// Candidate is one courier to evaluate for a destination.
type Candidate struct {
	Courier     domain.Courier
	Destination domain.Coordinates
	// Depot is the origin for couriers without a position.
	Depot    domain.Coordinates
	Mode     domain.Mode
	Priority domain.Priority
}

// Evaluate resolves the courier's route and scores it.
func (e *Evaluator) Evaluate(ctx context.Context, c Candidate) (domain.CandidateScore, error) {
	courier := c.Courier
	hasPosition := courier.HasPosition()
	origin := c.Depot
	if hasPosition {
		origin = *courier.Position
	}

	r := e.Resolve(ctx, c.Mode, origin, c.Destination)
	if !r.Usable() {
		return domain.CandidateScore{}, fmt.Errorf("evaluate courier %d: %w", courier.ID, r.Err)
	}

	minutes := ceilMinutes(r.Estimate.DurationSeconds)
	stale := courier.PositionUpdatedAt != nil && e.now().Sub(*courier.PositionUpdatedAt) > e.cfg.StaleAfter

	return domain.CandidateScore{
		CourierID:         courier.ID,
		CourierName:       courier.Name,
		CourierPhone:      courier.Phone,
		VehicleType:       courier.VehicleType,
		VehicleNumber:     courier.VehicleNumber,
		ActiveOrders:      courier.ActiveOrders,
		Capacity:          courier.Capacity(),
		DistanceMeters:    r.Estimate.DistanceMeters,
		DurationSeconds:   r.Estimate.DurationSeconds,
		DistanceKm:        round2(float64(r.Estimate.DistanceMeters) / 1000),
		DurationMinutes:   minutes,
		Polyline:          r.Estimate.Polyline,
		HasPosition:       hasPosition,
		PositionUpdatedAt: courier.PositionUpdatedAt,
		Score:             score(minutes, courier.ActiveOrders, hasPosition, stale, c.Priority),
		Mode:              c.Mode,
		Degraded:          r.Status == RouteDegraded,
		DegradedReason:    r.Reason,
	}, nil
}

func score(minutes, active int, hasPosition, stale bool, priority domain.Priority) float64 {
	s := float64(minutes) + loadPenalty*float64(active)
	if !hasPosition {
		s += noGPSPenalty
	}
	if stale {
		s += stalePenalty
	}
	if priority == domain.PriorityHigh {
		s *= priorityBoost
	}
	return round2(s)
}

// ceilMinutes rounds a duration in seconds up to whole minutes.
func ceilMinutes(seconds int) int {
	return int(math.Ceil(float64(seconds) / 60))
}

// ETA is now plus the duration rounded up to whole minutes.
func ETA(now time.Time, durationSeconds int) time.Time {
	return now.Add(time.Duration(ceilMinutes(durationSeconds)) * time.Minute)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
