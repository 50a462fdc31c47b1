package dispatchtx

import (
	"context"
	"time"

	"courier-dispatch/internal/domain"
)

// Repository is the set of writes that must share a transaction.
type Repository interface {
	// LockCourier locks the courier row and returns it with its current load, or nil if absent.
	LockCourier(ctx context.Context, courierID int64) (*domain.Courier, error)
	// AssignOrder sets the courier on an unassigned order; false means the order was no longer unassigned.
	AssignOrder(ctx context.Context, orderID, courierID int64, assignedAt, eta time.Time) (bool, error)
	// UpdateCourierPosition stores the latest position; false means no such courier.
	UpdateCourierPosition(ctx context.Context, s domain.PositionSample) (bool, error)
	InsertPositionSample(ctx context.Context, s domain.PositionSample) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
