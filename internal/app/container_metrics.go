package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"courier-dispatch/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimited      prometheus.Counter       `name:"rate_limit_exceeded_total"`
	ProviderRetries  prometheus.Counter       `name:"route_provider_retries_total"`
	Fallbacks        prometheus.Counter       `name:"route_provider_fallbacks_total"`
	DecisionFailures prometheus.Counter       `name:"dispatch_decision_log_failures_total"`
	EtaRecomputed    prometheus.Counter       `name:"eta_recomputations_total"`
	CacheLookups     *prometheus.CounterVec   `name:"route_cache_lookups_total"`
	Plans            *prometheus.CounterVec   `name:"dispatch_plans_total"`
	HTTPRequests     *prometheus.CounterVec   `name:"http_requests_total"`
	HTTPDuration     *prometheus.HistogramVec `name:"http_request_duration_seconds"`
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics)
}

// provideMetrics registers every collector once. A second container in the same
// process gets the collectors that are already registered.
func provideMetrics(reg prometheus.Registerer) (metricsOut, error) {
	var err error
	out := metricsOut{
		RateLimited:      register(reg, metrics.NewRateLimitExceededTotal(), &err),
		ProviderRetries:  register(reg, metrics.NewRouteProviderRetriesTotal(), &err),
		Fallbacks:        register(reg, metrics.NewRouteFallbacksTotal(), &err),
		DecisionFailures: register(reg, metrics.NewDecisionLogFailuresTotal(), &err),
		EtaRecomputed:    register(reg, metrics.NewEtaRecomputationsTotal(), &err),
		CacheLookups:     register(reg, metrics.NewRouteCacheHitsTotal(), &err),
		Plans:            register(reg, metrics.NewDispatchPlansTotal(), &err),
		HTTPRequests:     register(reg, metrics.NewHTTPRequestsTotal(), &err),
		HTTPDuration:     register(reg, metrics.NewHTTPRequestDuration(), &err),
	}
	return out, err
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, errp *error) T {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	if *errp == nil {
		*errp = err
	}
	return c
}
