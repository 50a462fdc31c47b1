package planner

import (
	"context"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/service/evaluator"
)

type courierLister interface {
	ListEligible(ctx context.Context, maxActive int) ([]domain.Courier, error)
}

type candidateEvaluator interface {
	Mode(ctx context.Context, forceManual bool) domain.Mode
	Depot(ctx context.Context) domain.Coordinates
	Evaluate(ctx context.Context, c evaluator.Candidate) (domain.CandidateScore, error)
	Resolve(ctx context.Context, mode domain.Mode, origin, dest domain.Coordinates) evaluator.RouteResult
}
