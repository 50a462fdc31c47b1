package handlers

import (
	"context"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/service/courier"
)

type dispatchPlanner interface {
	Plan(ctx context.Context, req domain.PlanRequest) (domain.PlanResult, error)
	ValidateAddress(ctx context.Context, dest domain.Coordinates) (domain.AddressCheck, error)
}

type autoAssigner interface {
	AutoAssign(ctx context.Context, orderID int64, opts domain.AssignOptions) (domain.AssignResult, error)
}

type positionTracker interface {
	UpdatePosition(ctx context.Context, u domain.PositionUpdate) ([]domain.EtaUpdate, error)
}

type availabilityReader interface {
	Availability(ctx context.Context) (courier.Fleet, error)
}
