package tracking

import (
	"context"
	"time"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/ports/dispatchtx"
	"courier-dispatch/internal/service/evaluator"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
}

type deliveryStore interface {
	ListActiveByCourier(ctx context.Context, courierID int64) ([]domain.ActiveDelivery, error)
	UpdateETA(ctx context.Context, orderID, courierID int64, eta time.Time) (bool, error)
}

type routeResolver interface {
	Mode(ctx context.Context, forceManual bool) domain.Mode
	Resolve(ctx context.Context, mode domain.Mode, origin, dest domain.Coordinates) evaluator.RouteResult
}

// Notifier publishes ETA events to interested parties.
type Notifier interface {
	PublishETA(ctx context.Context, ev domain.EtaEvent) error
}

type counter interface {
	Inc()
}
