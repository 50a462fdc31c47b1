// Package amqp publishes ETA events to a RabbitMQ topic exchange.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
)

// RoutingKeyPrefix prefixes the routing key of every ETA event; the order id follows.
const RoutingKeyPrefix = "order.eta."

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends ETA events to an exchange
type Publisher struct {
	conn     *amqp091.Connection
	ch       channel
	exchange string
	logger   logx.Logger
}

// Dial connects, declares the exchange and returns a Publisher. It returns nil when url is empty.
func Dial(logger logx.Logger, url, exchange string) (*Publisher, error) {
	if strings.TrimSpace(url) == "" {
		return nil, nil
	}
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	logger.Info("connected to rabbitmq", logx.String("exchange", exchange))
	return &Publisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// PublishETA publishes a persistent JSON message for the event.
func (p *Publisher) PublishETA(ctx context.Context, ev domain.EtaEvent) error {
	ev.EstimatedArrival = ev.EstimatedArrival.UTC()
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode eta event: %w", err)
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKeyPrefix+strconv.FormatInt(ev.OrderID, 10), false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish eta event: %w", err)
	}
	return nil
}

// Close closes the channel and the connection
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
