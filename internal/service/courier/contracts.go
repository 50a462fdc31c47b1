package courier

import (
	"context"

	"courier-dispatch/internal/domain"
)

// courierRepository defines storage operations required by the availability view.
type courierRepository interface {
	ListActive(ctx context.Context) ([]domain.Courier, error)
}
