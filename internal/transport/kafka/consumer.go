package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/orders"
)

// OrderHandler processes a single orders.Event from Kafka
type OrderHandler func(context.Context, orders.Event) error

// PositionHandler processes a single courier position report from Kafka
type PositionHandler func(context.Context, domain.PositionUpdate) error

// Topics names the topics the consumer reads. An empty name disables that stream.
type Topics struct {
	Orders    string
	Positions string
}

// Consumer wraps a Sarama consumer group and dispatches messages by topic
type Consumer struct {
	group      sarama.ConsumerGroup
	topics     Topics
	onOrder    OrderHandler
	onPosition PositionHandler
	logger     logx.Logger
	retryDelay time.Duration
}

var newConsumerGroup = sarama.NewConsumerGroup

// NewConsumer creates a new Kafka consumer. It returns nil when Kafka is not configured.
func NewConsumer(logger logx.Logger, brokers []string, groupID string, topics Topics, onOrder OrderHandler, onPosition PositionHandler) (*Consumer, error) {
	topics.Orders = strings.TrimSpace(topics.Orders)
	topics.Positions = strings.TrimSpace(topics.Positions)
	if onOrder == nil {
		topics.Orders = ""
	}
	if onPosition == nil {
		topics.Positions = ""
	}
	if len(brokers) == 0 || strings.TrimSpace(groupID) == "" || (topics.Orders == "" && topics.Positions == "") {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer group: %w", err)
	}

	return &Consumer{
		group:      group,
		topics:     topics,
		onOrder:    onOrder,
		onPosition: onPosition,
		logger:     logger,
		retryDelay: time.Second,
	}, nil
}

func (c *Consumer) subscriptions() []string {
	var out []string
	if c.topics.Orders != "" {
		out = append(out, c.topics.Orders)
	}
	if c.topics.Positions != "" {
		out = append(out, c.topics.Positions)
	}
	return out
}

// Run consumes until ctx is done
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}
	topics := c.subscriptions()

	for {
		if err := c.group.Consume(ctx, topics, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.Err(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close closes the consumer group
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

func (c *Consumer) dispatch(ctx context.Context, msg *sarama.ConsumerMessage) error {
	switch msg.Topic {
	case c.topics.Orders:
		var dto OrderEventDTO
		if err := json.Unmarshal(msg.Value, &dto); err != nil {
			return Permanent(fmt.Errorf("bad json: %w", err))
		}
		ev, err := dto.ToDomain()
		if err != nil {
			return Permanent(err)
		}
		return c.onOrder(ctx, ev)
	case c.topics.Positions:
		var dto PositionEventDTO
		if err := json.Unmarshal(msg.Value, &dto); err != nil {
			return Permanent(fmt.Errorf("bad json: %w", err))
		}
		u, err := dto.ToDomain()
		if err != nil {
			return Permanent(err)
		}
		return c.onPosition(ctx, u)
	default:
		return Permanent(fmt.Errorf("unexpected topic %q", msg.Topic))
	}
}

// isPermanent reports whether redelivering the message cannot help.
func isPermanent(err error) bool {
	return IsPermanent(err) ||
		errors.Is(err, apperr.ErrInvalid) ||
		errors.Is(err, apperr.ErrNotFound) ||
		errors.Is(err, apperr.ErrConflict) ||
		errors.Is(err, apperr.ErrDestinationMissing)
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks handled and permanently failing messages. A transient failure ends the
// session without marking, so the message is delivered again after the rebalance.
func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		err := h.c.dispatch(sess.Context(), msg)
		switch {
		case err == nil:
		case isPermanent(err):
			h.c.logger.Warn("kafka message skipped",
				logx.String("topic", msg.Topic),
				logx.Int64("offset", msg.Offset),
				logx.Err(err),
			)
		default:
			h.c.logger.Error("kafka handle failed, retry",
				logx.String("topic", msg.Topic),
				logx.Int64("offset", msg.Offset),
				logx.Err(err),
			)
			return err
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}
