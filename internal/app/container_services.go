package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"courier-dispatch/internal/config"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/gateway/routing"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/repository"
	"courier-dispatch/internal/service/assignment"
	"courier-dispatch/internal/service/courier"
	"courier-dispatch/internal/service/evaluator"
	"courier-dispatch/internal/service/planner"
	"courier-dispatch/internal/service/tracking"
)

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewCourierRepo,
		repository.NewOrderRepo,
		repository.NewSettingsRepo,
		repository.NewDecisionRepo,
		repository.NewRouteCacheRepo,
		repository.NewDispatchStore,
		newRouteProvider,
		newEvaluator,
		newPlanner,
		newNotifier,
		newAssignmentService,
		newTracker,
		func(cfg *config.Config, repo *repository.CourierRepo) *courier.Service {
			return courier.NewService(repo, cfg.Dispatch.OperationTimeout)
		},
	)
}

type routeProviderIn struct {
	dig.In

	Config  *config.Config
	Logger  logx.Logger
	Cache   *repository.RouteCacheRepo
	Retries prometheus.Counter     `name:"route_provider_retries_total"`
	Lookups *prometheus.CounterVec `name:"route_cache_lookups_total"`
}

// newRouteProvider builds Google client → retries → shared cache.
// Without an API key there is no provider and live mode degrades to straight-line estimates.
func newRouteProvider(in routeProviderIn) evaluator.RouteProvider {
	rc := in.Config.Routing
	if rc.APIKey == "" {
		in.Logger.Warn("routing api key not set, live routing disabled")
		return nil
	}
	client := routing.NewGoogleClient(rc.APIKey, rc.BaseURL, rc.Timeout)
	retrying := routing.NewRetryingProvider(client, in.Logger, in.Retries, routing.RetryConfig{
		MaxAttempts: rc.MaxAttempts,
		BaseDelay:   rc.BaseDelay,
		MaxDelay:    rc.MaxDelay,
	})
	return routing.NewCachingProvider(retrying, in.Cache, rc.CacheTTL, in.Logger, in.Lookups)
}

type evaluatorIn struct {
	dig.In

	Config    *config.Config
	Logger    logx.Logger
	Provider  evaluator.RouteProvider
	Settings  *repository.SettingsRepo
	Fallbacks prometheus.Counter `name:"route_provider_fallbacks_total"`
}

func newEvaluator(in evaluatorIn) *evaluator.Evaluator {
	d := in.Config.Dispatch
	return evaluator.New(in.Provider, in.Settings, evaluator.Config{
		AvgSpeedKmh:     d.AvgSpeedKmh,
		ProviderTimeout: d.ProviderTimeout,
		StaleAfter:      d.StaleAfter,
		Depot:           domain.Coordinates{Lat: d.DepotLat, Lng: d.DepotLng},
	}, in.Logger, in.Fallbacks)
}

type plannerIn struct {
	dig.In

	Config    *config.Config
	Logger    logx.Logger
	Couriers  *repository.CourierRepo
	Evaluator *evaluator.Evaluator
	Plans     *prometheus.CounterVec `name:"dispatch_plans_total"`
}

func newPlanner(in plannerIn) *planner.Planner {
	return planner.New(in.Couriers, in.Evaluator, planner.Config{
		PlanningTimeout: in.Config.Dispatch.PlanningTimeout,
		MaxConcurrency:  in.Config.Dispatch.MaxConcurrency,
	}, in.Logger, in.Plans)
}

type assignmentIn struct {
	dig.In

	Config    *config.Config
	Logger    logx.Logger
	Orders    *repository.OrderRepo
	Planner   *planner.Planner
	Store     *repository.DispatchStore
	Decisions *repository.DecisionRepo
	Notifier  etaNotifier
	Failures  prometheus.Counter `name:"dispatch_decision_log_failures_total"`
}

func newAssignmentService(in assignmentIn) *assignment.Service {
	return assignment.NewService(
		in.Orders,
		in.Planner,
		in.Store,
		in.Decisions,
		in.Notifier,
		in.Failures,
		in.Config.Dispatch.OperationTimeout,
		in.Logger,
	)
}

type trackerIn struct {
	dig.In

	Config     *config.Config
	Logger     logx.Logger
	Store      *repository.DispatchStore
	Orders     *repository.OrderRepo
	Evaluator  *evaluator.Evaluator
	Notifier   etaNotifier
	Recomputed prometheus.Counter `name:"eta_recomputations_total"`
}

func newTracker(in trackerIn) *tracking.Tracker {
	return tracking.NewTracker(
		in.Store,
		in.Orders,
		in.Evaluator,
		in.Notifier,
		in.Recomputed,
		in.Config.Dispatch.OperationTimeout,
		in.Logger,
	)
}
