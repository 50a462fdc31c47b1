package routing

import (
	"context"
	"fmt"
	"time"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"

	"github.com/prometheus/client_golang/prometheus"
)

type routeCache interface {
	Get(ctx context.Context, key string, now time.Time) (*domain.RouteEstimate, error)
	Put(ctx context.Context, key string, est domain.RouteEstimate, expiresAt time.Time) error
}

// CachingProvider serves recent live routes from a shared cache.
// Cache failures are logged and never fail the call.
type CachingProvider struct {
	next    routeProvider
	cache   routeCache
	ttl     time.Duration
	logger  logx.Logger
	lookups *prometheus.CounterVec
	now     func() time.Time
}

// NewCachingProvider wraps next. A non-positive ttl disables caching.
func NewCachingProvider(next routeProvider, cache routeCache, ttl time.Duration, logger logx.Logger, lookups *prometheus.CounterVec) *CachingProvider {
	return &CachingProvider{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
		lookups: lookups,
		now:     time.Now,
	}
}

// ComputeRoute returns a cached estimate when fresh, otherwise asks next and stores the answer.
func (p *CachingProvider) ComputeRoute(ctx context.Context, origin, dest domain.Coordinates, prefs domain.RoutePreferences) (domain.RouteEstimate, error) {
	if p.ttl <= 0 || p.cache == nil {
		return p.next.ComputeRoute(ctx, origin, dest, prefs)
	}

	key := cacheKey(origin, dest, prefs)
	now := p.now()

	cached, err := p.cache.Get(ctx, key, now)
	if err != nil {
		p.logger.Warn("route cache get failed", logx.String("key", key), logx.Err(err))
	}
	if cached != nil {
		p.observe("hit")
		return *cached, nil
	}
	p.observe("miss")

	est, err := p.next.ComputeRoute(ctx, origin, dest, prefs)
	if err != nil {
		return domain.RouteEstimate{}, err
	}
	if err := p.cache.Put(ctx, key, est, now.Add(p.ttl)); err != nil {
		p.logger.Warn("route cache put failed", logx.String("key", key), logx.Err(err))
	}
	return est, nil
}

func (p *CachingProvider) observe(result string) {
	if p.lookups != nil {
		p.lookups.WithLabelValues(result).Inc()
	}
}

// cacheKey rounds to 5 decimals, about one metre.
func cacheKey(origin, dest domain.Coordinates, prefs domain.RoutePreferences) string {
	return fmt.Sprintf("%.5f,%.5f|%.5f,%.5f|%s|%s|%t%t%t",
		origin.Lat, origin.Lng, dest.Lat, dest.Lng,
		prefs.TravelMode, prefs.RoutingPreference,
		prefs.AvoidTolls, prefs.AvoidHighways, prefs.AvoidFerries)
}
