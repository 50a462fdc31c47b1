package app

import (
	"context"
	"fmt"

	"courier-dispatch/internal/config"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/transport/amqp"
	"courier-dispatch/internal/transport/kafka"
)

type etaNotifier interface {
	PublishETA(ctx context.Context, ev domain.EtaEvent) error
	Close() error
}

var (
	newKafkaNotifier = func(logger logx.Logger, cfg config.Kafka) (etaNotifier, error) {
		p, err := kafka.NewProducer(logger, cfg.Brokers, cfg.NotifyTopic)
		if err != nil || p == nil {
			return nil, err
		}
		return p, nil
	}
	newAMQPNotifier = func(logger logx.Logger, cfg config.AMQP) (etaNotifier, error) {
		p, err := amqp.Dial(logger, cfg.URL, cfg.Exchange)
		if err != nil || p == nil {
			return nil, err
		}
		return p, nil
	}
)

// newNotifier picks the ETA event backend. A broker backend that is not configured falls back to logging.
func newNotifier(cfg *config.Config, logger logx.Logger) (etaNotifier, error) {
	var (
		n   etaNotifier
		err error
	)
	switch cfg.Notify {
	case config.NotifyKafka:
		n, err = newKafkaNotifier(logger, cfg.Kafka)
	case config.NotifyAMQP:
		n, err = newAMQPNotifier(logger, cfg.AMQP)
	}
	if err != nil {
		return nil, fmt.Errorf("%s notifier: %w", cfg.Notify, err)
	}
	if n == nil {
		if cfg.Notify != config.NotifyNone {
			logger.Warn("notify backend not configured, logging eta events", logx.String("backend", cfg.Notify))
		}
		return logNotifier{logger: logger}, nil
	}
	return n, nil
}

type logNotifier struct{ logger logx.Logger }

func (n logNotifier) PublishETA(_ context.Context, ev domain.EtaEvent) error {
	n.logger.Info("eta event",
		logx.Event("eta_event"),
		logx.Int64("order_id", ev.OrderID),
		logx.Any("estimated_arrival", ev.EstimatedArrival),
	)
	return nil
}

func (logNotifier) Close() error { return nil }
