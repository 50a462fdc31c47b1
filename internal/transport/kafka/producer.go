package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/IBM/sarama"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
)

// Producer publishes ETA events to a Kafka topic
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   logx.Logger
}

var newSyncProducer = sarama.NewSyncProducer

// NewProducer creates a Producer. It returns nil when Kafka is not configured.
func NewProducer(logger logx.Logger, brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return &Producer{producer: p, topic: strings.TrimSpace(topic), logger: logger}, nil
}

// PublishETA sends the event keyed by order id, so events of one order stay ordered.
func (p *Producer) PublishETA(ctx context.Context, ev domain.EtaEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ev.EstimatedArrival = ev.EstimatedArrival.UTC()
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode eta event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(ev.OrderID, 10)),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		return fmt.Errorf("send eta event: %w", err)
	}
	p.logger.Debug("eta event published",
		logx.Int64("order_id", ev.OrderID),
		logx.Int("partition", int(partition)),
		logx.Int64("offset", offset),
	)
	return nil
}

// Close closes the underlying producer
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
