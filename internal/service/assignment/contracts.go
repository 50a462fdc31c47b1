//go:generate mockgen -source=contracts.go -destination=assignment_mocks_test.go -package=assignment_test

package assignment

import (
	"context"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/ports/dispatchtx"
)

type orderReader interface {
	Get(ctx context.Context, id int64) (*domain.Order, error)
}

type dispatchPlanner interface {
	Plan(ctx context.Context, req domain.PlanRequest) (domain.PlanResult, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
}

type decisionLog interface {
	Append(ctx context.Context, d domain.DispatchDecision) error
}

// Notifier publishes ETA events to interested parties.
type Notifier interface {
	PublishETA(ctx context.Context, ev domain.EtaEvent) error
}

type counter interface {
	Inc()
}
