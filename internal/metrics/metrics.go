package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewRouteProviderRetriesTotal returns a counter for retry attempts against the route provider
func NewRouteProviderRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "route_provider_retries_total",
		Help: "Total number of retry attempts performed against the route provider",
	})
}

// NewRouteFallbacksTotal returns a counter for route estimates that fell back to straight-line math
func NewRouteFallbacksTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "route_provider_fallbacks_total",
		Help: "Total number of route estimates served by the straight-line fallback",
	})
}

// NewRouteCacheHitsTotal returns a counter for route cache lookups by result (hit, miss)
func NewRouteCacheHitsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "route_cache_lookups_total",
		Help: "Total number of route cache lookups by result",
	}, []string{"result"})
}

// NewDispatchPlansTotal returns a counter for planning passes by outcome
func NewDispatchPlansTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_plans_total",
		Help: "Total number of dispatch planning passes by outcome",
	}, []string{"outcome"})
}

// NewDecisionLogFailuresTotal returns a counter for dispatch decisions that could not be recorded
func NewDecisionLogFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_decision_log_failures_total",
		Help: "Total number of dispatch decisions that failed to be recorded",
	})
}

// NewEtaRecomputationsTotal returns a counter for ETA recomputations that changed a stored ETA
func NewEtaRecomputationsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eta_recomputations_total",
		Help: "Total number of order ETAs changed by location updates",
	})
}

// NewHTTPRequestsTotal returns a counter for served HTTP requests by method, route pattern and status
func NewHTTPRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
}

// NewHTTPRequestDuration returns a histogram of HTTP request durations by method, route pattern and status
func NewHTTPRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
}
