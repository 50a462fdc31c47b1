package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courier-dispatch/internal/http/handlers"
	"courier-dispatch/internal/http/middleware/ratelimit"
)

// RequestTimeout bounds a single request. Planning passes have their own, shorter deadline.
const RequestTimeout = 60 * time.Second

// Deps are the handlers and middleware mounted by New. Observe and Limit are optional.
type Deps struct {
	Base     *handlers.Handlers
	Dispatch *handlers.DispatchHandler
	Couriers *handlers.CourierHandler
	Observe  func(http.Handler) http.Handler
	Limit    *ratelimit.Middleware
	Metrics  http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if d.Observe != nil {
		r.Use(d.Observe)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))

	metrics := d.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metrics)

	r.Route("/dispatch", func(r chi.Router) {
		r.Post("/plan", d.Dispatch.Plan)
		r.Post("/validate-address", d.Dispatch.ValidateAddress)
	})
	r.Post("/orders/{id}/auto-assign", d.Dispatch.AutoAssign)

	r.Route("/couriers", func(r chi.Router) {
		r.Get("/availability", d.Couriers.Availability)
		location := r.With()
		if d.Limit != nil {
			location = r.With(d.Limit.Handler())
		}
		location.Post("/{id}/location", d.Couriers.UpdateLocation)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))
	r.MethodNotAllowed(http.HandlerFunc(d.Base.MethodNotAllowed))

	return r
}
