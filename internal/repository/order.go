package repository

import (
	"context"
	"fmt"
	"time"

	"courier-dispatch/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderRepo represents order repository.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

// Get returns order by its ID, or nil if it does not exist.
func (r *OrderRepo) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var (
		o        domain.Order
		lat, lng *float64
	)
	err := r.db.QueryRow(ctx, `
        SELECT id, delivery_latitude, delivery_longitude, courier_id, status, priority,
               estimated_arrival, assigned_at
        FROM orders WHERE id = $1
    `, id).Scan(&o.ID, &lat, &lng, &o.CourierID, &o.Status, &o.Priority, &o.EstimatedArrival, &o.AssignedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	if lat != nil && lng != nil {
		o.Destination = &domain.Coordinates{Lat: *lat, Lng: *lng}
	}
	return &o, nil
}

// ListActiveByCourier returns the courier's orders in an active status.
func (r *OrderRepo) ListActiveByCourier(ctx context.Context, courierID int64) ([]domain.ActiveDelivery, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, status, delivery_latitude, delivery_longitude, estimated_arrival
        FROM orders
        WHERE courier_id = $1 AND status = ANY($2)
        ORDER BY id
    `, courierID, activeStatuses())
	if err != nil {
		return nil, fmt.Errorf("list active orders of courier %d: %w", courierID, err)
	}
	defer rows.Close()

	out := make([]domain.ActiveDelivery, 0)
	for rows.Next() {
		var (
			d        domain.ActiveDelivery
			lat, lng *float64
		)
		if err := rows.Scan(&d.OrderID, &d.Status, &lat, &lng, &d.EstimatedArrival); err != nil {
			return nil, err
		}
		if lat != nil && lng != nil {
			d.Destination = &domain.Coordinates{Lat: *lat, Lng: *lng}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateETA writes the ETA if the order still belongs to the courier and is active.
func (r *OrderRepo) UpdateETA(ctx context.Context, orderID, courierID int64, eta time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET estimated_arrival = $3, updated_at = now()
        WHERE id = $1 AND courier_id = $2 AND status = ANY($4)
    `, orderID, courierID, eta, activeStatuses())
	if err != nil {
		return false, fmt.Errorf("update eta of order %d: %w", orderID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ListUnassigned returns up to limit ids of unassigned orders that have a destination, oldest first.
func (r *OrderRepo) ListUnassigned(ctx context.Context, limit int) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id FROM orders
        WHERE status = $1
          AND delivery_latitude IS NOT NULL AND delivery_longitude IS NOT NULL
        ORDER BY created_at, id
        LIMIT $2
    `, string(domain.OrderUnassigned), limit)
	if err != nil {
		return nil, fmt.Errorf("list unassigned orders: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, limit)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
