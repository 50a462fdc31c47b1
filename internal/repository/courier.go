package repository

import (
	"context"
	"fmt"
	"time"

	"courier-dispatch/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CourierRepo represents courier repository.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

const courierColumns = `
    c.id, c.name, c.phone, c.vehicle_type, c.vehicle_number,
    c.current_latitude, c.current_longitude, c.location_accuracy, c.location_updated_at,
    c.max_active_orders, c.is_active,
    (SELECT COUNT(*) FROM orders o WHERE o.courier_id = c.id AND o.status = ANY($1)) AS active_orders`

// ListEligible returns active couriers below their capacity and, when maxActive > 0, below maxActive.
// Least loaded first, freshest position next, couriers without a position last.
func (r *CourierRepo) ListEligible(ctx context.Context, maxActive int) ([]domain.Courier, error) {
	rows, err := r.db.Query(ctx, `
        SELECT * FROM (SELECT `+courierColumns+` FROM couriers c WHERE c.is_active) s
        WHERE s.active_orders < COALESCE(NULLIF(s.max_active_orders, 0), $2)
          AND ($3 <= 0 OR s.active_orders < $3)
        ORDER BY s.active_orders ASC, s.location_updated_at DESC NULLS LAST, s.id ASC
    `, activeStatuses(), domain.DefaultCourierCapacity, maxActive)
	if err != nil {
		return nil, fmt.Errorf("list eligible couriers: %w", err)
	}
	return collectCouriers(rows)
}

// ListActive returns every active courier with its current load, ordered by id.
func (r *CourierRepo) ListActive(ctx context.Context) ([]domain.Courier, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+courierColumns+` FROM couriers c WHERE c.is_active ORDER BY c.id`, activeStatuses())
	if err != nil {
		return nil, fmt.Errorf("list active couriers: %w", err)
	}
	return collectCouriers(rows)
}

func collectCouriers(rows pgx.Rows) ([]domain.Courier, error) {
	defer rows.Close()
	out := make([]domain.Courier, 0)
	for rows.Next() {
		c, err := scanCourier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCourier(row pgx.Row) (domain.Courier, error) {
	var (
		c         domain.Courier
		lat, lng  *float64
		updatedAt *time.Time
	)
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.VehicleType, &c.VehicleNumber,
		&lat, &lng, &c.PositionAccuracy, &updatedAt,
		&c.MaxActiveOrders, &c.Active, &c.ActiveOrders)
	if err != nil {
		return domain.Courier{}, err
	}
	if lat != nil && lng != nil {
		c.Position = &domain.Coordinates{Lat: *lat, Lng: *lng}
	}
	if updatedAt != nil {
		t := updatedAt.UTC()
		c.PositionUpdatedAt = &t
	}
	return c, nil
}

func activeStatuses() []string {
	out := make([]string, 0, len(domain.ActiveOrderStatuses))
	for _, s := range domain.ActiveOrderStatuses {
		out = append(out, string(s))
	}
	return out
}
