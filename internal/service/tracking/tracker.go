package tracking

import (
	"context"
	"fmt"
	"math"
	"time"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/ports/dispatchtx"
	"courier-dispatch/internal/service/evaluator"
)

// Tracker records courier positions and keeps ETAs of their active orders current.
type Tracker struct {
	tx               txRunner
	deliveries       deliveryStore
	routes           routeResolver
	notifier         Notifier
	recomputed       counter
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewTracker creates a Tracker. notifier and recomputed may be nil.
func NewTracker(tx txRunner, deliveries deliveryStore, routes routeResolver, notifier Notifier, recomputed counter, timeout time.Duration, logger logx.Logger) *Tracker {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Tracker{
		tx:               tx,
		deliveries:       deliveries,
		routes:           routes,
		notifier:         notifier,
		recomputed:       recomputed,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (t *Tracker) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, t.operationTimeout)
}

// UpdatePosition stores the position, appends it to the history and re-estimates the courier's active orders.
// It returns the orders whose ETA changed.
func (t *Tracker) UpdatePosition(ctx context.Context, u domain.PositionUpdate) ([]domain.EtaUpdate, error) {
	if u.CourierID <= 0 || !u.Position.Valid() {
		return nil, fmt.Errorf("position update for courier %d: %w", u.CourierID, apperr.ErrInvalid)
	}

	now := t.now()
	sample := domain.PositionSample{
		CourierID:  u.CourierID,
		Position:   u.Position,
		Accuracy:   clampAccuracy(u.Accuracy),
		RecordedAt: now,
	}
	if err := t.store(ctx, sample); err != nil {
		return nil, err
	}

	active, err := t.listActive(ctx, u.CourierID)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}

	mode := t.routes.Mode(ctx, false)
	var changed []domain.EtaUpdate
	for _, d := range active {
		if d.Destination == nil || !d.Destination.Valid() {
			continue
		}
		upd, ok := t.recompute(ctx, mode, u, d, now)
		if ok {
			changed = append(changed, upd)
		}
	}
	return changed, nil
}

func (t *Tracker) store(ctx context.Context, s domain.PositionSample) error {
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()

	return t.tx.WithTx(ctx, func(tx dispatchtx.Repository) error {
		found, err := tx.UpdateCourierPosition(ctx, s)
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrCourierNotFound
		}
		return tx.InsertPositionSample(ctx, s)
	})
}

func (t *Tracker) listActive(ctx context.Context, courierID int64) ([]domain.ActiveDelivery, error) {
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()

	active, err := t.deliveries.ListActiveByCourier(ctx, courierID)
	if err != nil {
		return nil, fmt.Errorf("list active orders: %w", err)
	}
	return active, nil
}

// recompute re-estimates one order and stores the ETA if it moved by at least a second.
func (t *Tracker) recompute(ctx context.Context, mode domain.Mode, u domain.PositionUpdate, d domain.ActiveDelivery, now time.Time) (domain.EtaUpdate, bool) {
	r := t.routes.Resolve(ctx, mode, u.Position, *d.Destination)
	if !r.Usable() {
		t.logger.Warn("eta recompute failed",
			logx.Event("eta_recompute_failed"),
			logx.Int64("order_id", d.OrderID),
			logx.Int64("courier_id", u.CourierID),
			logx.Err(r.Err),
		)
		return domain.EtaUpdate{}, false
	}

	eta := evaluator.ETA(now, r.Estimate.DurationSeconds).Truncate(time.Second)
	if d.EstimatedArrival != nil && d.EstimatedArrival.Truncate(time.Second).Equal(eta) {
		return domain.EtaUpdate{}, false
	}

	wctx, cancel := t.withTimeout(ctx)
	defer cancel()
	ok, err := t.deliveries.UpdateETA(wctx, d.OrderID, u.CourierID, eta)
	if err != nil {
		t.logger.Error("store eta", logx.Int64("order_id", d.OrderID), logx.Err(err))
		return domain.EtaUpdate{}, false
	}
	if !ok {
		// reassigned or finished since it was listed
		return domain.EtaUpdate{}, false
	}

	if t.recomputed != nil {
		t.recomputed.Inc()
	}
	t.logger.Info("eta recomputed",
		logx.Event("eta_recomputed"),
		logx.Int64("order_id", d.OrderID),
		logx.Int64("courier_id", u.CourierID),
		logx.Time("eta", eta),
		logx.Bool("degraded", r.Status == evaluator.RouteDegraded),
	)

	courierID := u.CourierID
	t.publish(ctx, domain.EtaEvent{OrderID: d.OrderID, CourierID: &courierID, EstimatedArrival: eta})

	return domain.EtaUpdate{
		OrderID:          d.OrderID,
		CourierID:        u.CourierID,
		Status:           d.Status,
		EstimatedArrival: eta,
		Degraded:         r.Status == evaluator.RouteDegraded,
	}, true
}

func (t *Tracker) publish(ctx context.Context, ev domain.EtaEvent) {
	if t.notifier == nil {
		return
	}
	if err := t.notifier.PublishETA(ctx, ev); err != nil {
		t.logger.Warn("publish eta event", logx.Int64("order_id", ev.OrderID), logx.Err(err))
	}
}

func clampAccuracy(a *float64) *float64 {
	if a == nil {
		return nil
	}
	v := *a
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	return &v
}
