package planner

import (
	"context"
	"fmt"
	"math"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/evaluator"
)

// ValidateAddress checks that dest has a live route from the depot inside the service area.
// A route that could not be computed live needs manual review.
func (p *Planner) ValidateAddress(ctx context.Context, dest domain.Coordinates) (domain.AddressCheck, error) {
	if !dest.Valid() {
		return domain.AddressCheck{}, fmt.Errorf("destination %s: %w", dest, apperr.ErrInvalid)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.PlanningTimeout)
	defer cancel()

	r := p.evaluator.Resolve(ctx, domain.ModeLive, p.evaluator.Depot(ctx), dest)
	if r.Status == evaluator.RouteFailed {
		if err := ctx.Err(); err != nil {
			return domain.AddressCheck{}, err
		}
		p.logger.Warn("address validation failed", logx.String("destination", dest.String()), logx.Err(r.Err))
		return domain.AddressCheck{RequiresManualReview: true, Reason: r.Err.Error()}, nil
	}

	km := math.Round(float64(r.Estimate.DistanceMeters)/10) / 100
	check := domain.AddressCheck{
		Routable:          r.Status == evaluator.RouteOK,
		DistanceKm:        km,
		DurationMinutes:   int(math.Ceil(float64(r.Estimate.DurationSeconds) / 60)),
		WithinServiceArea: km <= domain.ServiceRadiusKm,
	}
	if r.Status == evaluator.RouteDegraded {
		check.RequiresManualReview = true
		check.Reason = r.Reason
	}
	return check, nil
}
