//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"courier-dispatch/internal/domain"
)

// Assigner runs automatic dispatch for a single order.
type Assigner interface {
	AutoAssign(ctx context.Context, orderID int64, opts domain.AssignOptions) (domain.AssignResult, error)
}
