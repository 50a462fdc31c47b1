package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"courier-dispatch/internal/config"
	"courier-dispatch/internal/http/handlers"
	"courier-dispatch/internal/http/middleware"
	"courier-dispatch/internal/http/middleware/ratelimit"
	"courier-dispatch/internal/http/pprofserver"
	"courier-dispatch/internal/http/router"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/assignment"
	"courier-dispatch/internal/service/courier"
	"courier-dispatch/internal/service/planner"
	"courier-dispatch/internal/service/tracking"
)

func registerHTTP(container *dig.Container) error {
	if err := provideAll(container,
		handlers.New,
		func(logger logx.Logger, p *planner.Planner, a *assignment.Service) *handlers.DispatchHandler {
			return handlers.NewDispatchHandler(logger, p, a)
		},
		func(logger logx.Logger, t *tracking.Tracker, c *courier.Service) *handlers.CourierHandler {
			return handlers.NewCourierHandler(logger, t, c)
		},
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		newServer,
	); err != nil {
		return err
	}
	return container.Provide(newPprofServer, dig.Name("pprof_server"))
}

type routerIn struct {
	dig.In

	Logger    logx.Logger
	Base      *handlers.Handlers
	Dispatch  *handlers.DispatchHandler
	Couriers  *handlers.CourierHandler
	Limit     *ratelimit.Middleware
	Requests  *prometheus.CounterVec   `name:"http_requests_total"`
	Durations *prometheus.HistogramVec `name:"http_request_duration_seconds"`
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Base:     in.Base,
		Dispatch: in.Dispatch,
		Couriers: in.Couriers,
		Observe:  middleware.Observability(in.Logger, in.Requests, in.Durations),
		Limit:    in.Limit,
	})
}

func newServer(cfg *config.Config, mux http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// planning may take up to the planning timeout
		WriteTimeout: router.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// newPprofServer returns nil when profiling is disabled.
func newPprofServer(cfg *config.Config) *http.Server {
	if !cfg.Pprof.Enabled {
		return nil
	}
	return pprofserver.New(pprofserver.Config{
		Addr: cfg.Pprof.Addr,
		User: cfg.Pprof.User,
		Pass: cfg.Pprof.Pass,
	})
}
