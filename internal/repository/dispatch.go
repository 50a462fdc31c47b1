package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/ports/dispatchtx"
)

// DispatchStore runs assignment and tracking writes in transactions.
type DispatchStore struct {
	db *pgxpool.Pool
}

// NewDispatchStore creates a new DispatchStore.
func NewDispatchStore(db *pgxpool.Pool) *DispatchStore {
	return &DispatchStore{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DispatchStore) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				panic(rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// LockCourier locks the courier row for the rest of the transaction.
// The load is read in a second statement so it sees assignments committed
// while this transaction waited for the lock.
func (r *TxRepo) LockCourier(ctx context.Context, courierID int64) (*domain.Courier, error) {
	var locked int
	if err := r.tx.QueryRow(ctx, `SELECT 1 FROM couriers WHERE id = $1 FOR UPDATE`, courierID).Scan(&locked); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock courier %d: %w", courierID, err)
	}

	row := r.tx.QueryRow(ctx, `SELECT `+courierColumns+` FROM couriers c WHERE c.id = $2`,
		activeStatuses(), courierID)
	c, err := scanCourier(row)
	if err != nil {
		return nil, fmt.Errorf("load locked courier %d: %w", courierID, err)
	}
	return &c, nil
}

// AssignOrder moves an unassigned order to assigned.
func (r *TxRepo) AssignOrder(ctx context.Context, orderID, courierID int64, assignedAt, eta time.Time) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET courier_id = $2, status = $3, assigned_at = $4, estimated_arrival = $5, updated_at = now()
        WHERE id = $1 AND status = $6
    `, orderID, courierID, string(domain.OrderAssigned), assignedAt, eta, string(domain.OrderUnassigned))
	if err != nil {
		return false, fmt.Errorf("assign order %d: %w", orderID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateCourierPosition stores the courier's latest position.
func (r *TxRepo) UpdateCourierPosition(ctx context.Context, s domain.PositionSample) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE couriers
        SET current_latitude = $2, current_longitude = $3, location_accuracy = $4,
            location_updated_at = $5, updated_at = now()
        WHERE id = $1
    `, s.CourierID, s.Position.Lat, s.Position.Lng, s.Accuracy, s.RecordedAt)
	if err != nil {
		return false, fmt.Errorf("update courier %d position: %w", s.CourierID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// InsertPositionSample appends a row to the position history.
func (r *TxRepo) InsertPositionSample(ctx context.Context, s domain.PositionSample) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO courier_position_history (courier_id, latitude, longitude, accuracy, recorded_at)
        VALUES ($1, $2, $3, $4, $5)
    `, s.CourierID, s.Position.Lat, s.Position.Lng, s.Accuracy, s.RecordedAt)
	if err != nil {
		return fmt.Errorf("insert position sample: %w", err)
	}
	return nil
}
