//go:generate mockgen -source=contracts.go -destination=evaluator_mocks_test.go -package=evaluator

package evaluator

import (
	"context"

	"courier-dispatch/internal/domain"
)

// RouteProvider computes a travel estimate between two points.
type RouteProvider interface {
	ComputeRoute(ctx context.Context, origin, dest domain.Coordinates, prefs domain.RoutePreferences) (domain.RouteEstimate, error)
}

// settingsReader exposes the persisted dispatch settings.
type settingsReader interface {
	ManualMode(ctx context.Context) (bool, error)
	Depot(ctx context.Context) (*domain.Coordinates, error)
}

type counter interface {
	Inc()
}
