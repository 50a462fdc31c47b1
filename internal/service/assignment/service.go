package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/ports/dispatchtx"
	"courier-dispatch/internal/service/evaluator"
)

// ReasonCapacityExhausted is reported when every ranked courier filled up before the order could be written.
const ReasonCapacityExhausted = "capacity_exhausted"

// Service assigns orders to the best available courier.
type Service struct {
	orders           orderReader
	planner          dispatchPlanner
	tx               txRunner
	decisions        decisionLog
	notifier         Notifier
	decisionFailures counter
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
	newID            func() uuid.UUID
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// NewService creates a new assignment Service. notifier and decisionFailures may be nil.
func NewService(
	orders orderReader,
	planner dispatchPlanner,
	tx txRunner,
	decisions decisionLog,
	notifier Notifier,
	decisionFailures counter,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		orders:           orders,
		planner:          planner,
		tx:               tx,
		decisions:        decisions,
		notifier:         notifier,
		decisionFailures: decisionFailures,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.New,
	}
}

// AutoAssign plans the order and assigns it to the best courier that still has room.
// Planning failures are not errors: the result asks for manual assignment instead.
func (s *Service) AutoAssign(ctx context.Context, orderID int64, opts domain.AssignOptions) (domain.AssignResult, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return domain.AssignResult{}, err
	}

	priority := opts.Priority
	if priority == "" {
		priority = order.Priority
	}

	plan, err := s.planner.Plan(ctx, domain.PlanRequest{
		Destination:     *order.Destination,
		MaxActiveOrders: opts.MaxActiveOrders,
		MaxDistanceKm:   opts.MaxDistanceKm,
		Priority:        priority,
		ForceManual:     opts.ForceManual,
	})
	if err != nil {
		if !isPlanningFailure(err) {
			return domain.AssignResult{}, err
		}
		s.logger.Warn("order requires manual assignment",
			logx.Event("manual_assignment_required"),
			logx.Int64("order_id", orderID),
			logx.String("reason", apperr.Code(err)),
		)
		return domain.AssignResult{OrderID: orderID, RequiresManual: true, Reason: apperr.Code(err)}, nil
	}

	now := s.now()
	chosen, eta, err := s.commit(ctx, orderID, plan, now)
	if err != nil {
		return domain.AssignResult{}, err
	}
	if chosen == nil {
		s.logger.Warn("order requires manual assignment",
			logx.Event("manual_assignment_required"),
			logx.Int64("order_id", orderID),
			logx.String("reason", ReasonCapacityExhausted),
		)
		return domain.AssignResult{OrderID: orderID, RequiresManual: true, Reason: ReasonCapacityExhausted, Mode: plan.Mode}, nil
	}

	s.recordDecision(ctx, domain.DispatchDecision{
		ID:         s.newID(),
		OrderID:    orderID,
		CourierID:  chosen.CourierID,
		Chosen:     *chosen,
		Candidates: plan.Evaluated,
		Total:      plan.TotalCandidates,
		Mode:       plan.Mode,
		ActorID:    opts.ActorID,
		DecidedAt:  now,
	})

	status := domain.OrderAssigned
	s.publish(ctx, domain.EtaEvent{OrderID: orderID, CourierID: &chosen.CourierID, EstimatedArrival: eta, Status: &status})

	s.logger.Info("courier assigned",
		logx.Event("courier_assigned"),
		logx.Int64("order_id", orderID),
		logx.Int64("courier_id", chosen.CourierID),
		logx.Float64("score", chosen.Score),
		logx.String("mode", string(plan.Mode)),
		logx.Time("eta", eta),
	)

	return domain.AssignResult{
		OrderID:           orderID,
		Assigned:          true,
		Courier:           chosen,
		EstimatedArrival:  &eta,
		AlternativesCount: len(plan.Alternatives),
		Mode:              plan.Mode,
	}, nil
}

func (s *Service) loadOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}
	switch {
	case order == nil:
		return nil, apperr.ErrOrderNotFound
	case !order.HasDestination():
		return nil, apperr.ErrDestinationMissing
	case order.Status != domain.OrderUnassigned:
		return nil, apperr.ErrAlreadyAssigned
	}
	return order, nil
}

// commit writes the assignment to the first ranked courier that still has room after locking it.
// A nil courier means none had room.
func (s *Service) commit(ctx context.Context, orderID int64, plan domain.PlanResult, now time.Time) (*domain.CandidateScore, time.Time, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	candidates := append([]domain.CandidateScore{plan.Recommended}, plan.Alternatives...)

	var (
		chosen *domain.CandidateScore
		eta    time.Time
	)
	err := s.tx.WithTx(ctx, func(tx dispatchtx.Repository) error {
		chosen = nil
		for i := range candidates {
			c := candidates[i]
			courier, err := tx.LockCourier(ctx, c.CourierID)
			if err != nil {
				return err
			}
			if courier == nil || !courier.Active || courier.ActiveOrders >= courier.Capacity() {
				s.logger.Info("candidate no longer has room",
					logx.Int64("order_id", orderID),
					logx.Int64("courier_id", c.CourierID),
				)
				continue
			}

			eta = evaluator.ETA(now, c.DurationSeconds)
			ok, err := tx.AssignOrder(ctx, orderID, c.CourierID, now, eta)
			if err != nil {
				return err
			}
			if !ok {
				return apperr.ErrAlreadyAssigned
			}
			c.ActiveOrders = courier.ActiveOrders
			chosen = &c
			return nil
		}
		return nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	return chosen, eta, nil
}

// recordDecision appends the audit record. Failures never undo the assignment.
func (s *Service) recordDecision(ctx context.Context, d domain.DispatchDecision) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.decisions.Append(ctx, d); err != nil {
		if s.decisionFailures != nil {
			s.decisionFailures.Inc()
		}
		s.logger.Error("record dispatch decision",
			logx.Event("decision_log_failed"),
			logx.Int64("order_id", d.OrderID),
			logx.String("decision_id", d.ID.String()),
			logx.Err(err),
		)
	}
}

func (s *Service) publish(ctx context.Context, ev domain.EtaEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishETA(ctx, ev); err != nil {
		s.logger.Warn("publish eta event", logx.Int64("order_id", ev.OrderID), logx.Err(err))
	}
}

func isPlanningFailure(err error) bool {
	return errors.Is(err, apperr.ErrNoCouriersAvailable) ||
		errors.Is(err, apperr.ErrAllCandidatesFailed) ||
		errors.Is(err, apperr.ErrPlanningTimeout)
}
