package app

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/config"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/jobs"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/repository"
	"courier-dispatch/internal/service/assignment"
	"courier-dispatch/internal/service/orders"
	"courier-dispatch/internal/service/tracking"
	"courier-dispatch/internal/transport/kafka"
)

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(a *assignment.Service, logger logx.Logger) *orders.Processor {
			return orders.NewProcessor(a, logger)
		},
		func(p *orders.Processor) kafka.OrderHandler { return makeOrderHandler(p) },
		func(t *tracking.Tracker, logger logx.Logger) kafka.PositionHandler {
			return makePositionHandler(t, logger)
		},
		newKafkaConsumer,
		newRedispatchJob,
	)
}

type orderEventHandler interface {
	Handle(ctx context.Context, e orders.Event) error
}

func makeOrderHandler(p orderEventHandler) kafka.OrderHandler {
	return p.Handle
}

type positionUpdater interface {
	UpdatePosition(ctx context.Context, u domain.PositionUpdate) ([]domain.EtaUpdate, error)
}

// makePositionHandler drops reports of unknown couriers; they cannot succeed on retry.
func makePositionHandler(t positionUpdater, logger logx.Logger) kafka.PositionHandler {
	return func(ctx context.Context, u domain.PositionUpdate) error {
		updated, err := t.UpdatePosition(ctx, u)
		if errors.Is(err, apperr.ErrCourierNotFound) {
			logger.Warn("position for unknown courier", logx.Int64("courier_id", u.CourierID))
			return nil
		}
		if err != nil {
			return err
		}
		logger.Debug("position applied", logx.Int64("courier_id", u.CourierID), logx.Int("updated_orders", len(updated)))
		return nil
	}
}

func newKafkaConsumer(cfg *config.Config, logger logx.Logger, onOrder kafka.OrderHandler, onPosition kafka.PositionHandler) (*kafka.Consumer, error) {
	return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, kafka.Topics{
		Orders:    cfg.Kafka.OrdersTopic,
		Positions: cfg.Kafka.PositionsTopic,
	}, onOrder, onPosition)
}

// newRedispatchJob returns nil when the sweep has no schedule.
func newRedispatchJob(cfg *config.Config, logger logx.Logger, ordersRepo *repository.OrderRepo, a *assignment.Service, cache *repository.RouteCacheRepo) *jobs.RedispatchJob {
	if cfg.Sweep.Schedule == "" {
		return nil
	}
	return jobs.NewRedispatchJob(ordersRepo, a, cache, cfg.Sweep.Schedule, cfg.Sweep.Batch, logger)
}
