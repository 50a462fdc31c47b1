package evaluator

import "courier-dispatch/internal/domain"

// RouteStatus tells how a route was resolved.
type RouteStatus int

// Route statuses.
const (
	// RouteOK is a live estimate, or a straight-line one in manual mode.
	RouteOK RouteStatus = iota
	// RouteDegraded is a straight-line estimate used because the provider could not answer.
	RouteDegraded
	// RouteFailed means no estimate is available.
	RouteFailed
)

func (s RouteStatus) String() string {
	switch s {
	case RouteOK:
		return "ok"
	case RouteDegraded:
		return "degraded"
	default:
		return "failed"
	}
}

// RouteResult is the outcome of resolving one route.
type RouteResult struct {
	Status   RouteStatus
	Estimate domain.RouteEstimate
	// Reason explains a degraded estimate.
	Reason string
	// Err is set when Status is RouteFailed.
	Err error
}

// Usable reports whether the result carries an estimate.
func (r RouteResult) Usable() bool { return r.Status != RouteFailed }

func routeOK(est domain.RouteEstimate) RouteResult {
	return RouteResult{Status: RouteOK, Estimate: est}
}

func routeDegraded(est domain.RouteEstimate, reason string) RouteResult {
	return RouteResult{Status: RouteDegraded, Estimate: est, Reason: reason}
}

func routeFailed(err error) RouteResult {
	return RouteResult{Status: RouteFailed, Err: err}
}
