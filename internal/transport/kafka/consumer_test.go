package kafka

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/service/orders"
	testlog "courier-dispatch/internal/testutil"
)

type fakeGroup struct {
	consume func(ctx context.Context, topics []string) error
	closed  atomic.Bool
}

func (g *fakeGroup) Consume(ctx context.Context, topics []string, _ sarama.ConsumerGroupHandler) error {
	return g.consume(ctx, topics)
}
func (g *fakeGroup) Errors() <-chan error {
	ch := make(chan error)
	close(ch)
	return ch
}
func (g *fakeGroup) Close() error              { g.closed.Store(true); return nil }
func (g *fakeGroup) Pause(map[string][]int32)  {}
func (g *fakeGroup) Resume(map[string][]int32) {}
func (g *fakeGroup) PauseAll()                 {}
func (g *fakeGroup) ResumeAll()                {}

func noopOrder(context.Context, orders.Event) error { return nil }

func noopPosition(context.Context, domain.PositionUpdate) error { return nil }

func TestNewConsumer_SkipsWhenNoKafkaConfig(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	topics := Topics{Orders: "orders", Positions: "positions"}

	got, err := NewConsumer(rec.Logger(), nil, "gid", topics, noopOrder, noopPosition)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, " ", topics, noopOrder, noopPosition)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, "gid", Topics{Orders: "  "}, noopOrder, noopPosition)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, "gid", topics, nil, nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

// Tests below swap the package-level group constructor and must not run in parallel.

func TestNewConsumer_ReturnsErrorWhenSaramaFails(t *testing.T) {
	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	sentinel := errors.New("boom")
	newConsumerGroup = func(_ []string, _ string, _ *sarama.Config) (sarama.ConsumerGroup, error) {
		return nil, sentinel
	}

	got, err := NewConsumer(testlog.New().Logger(), []string{"b:9092"}, "gid", Topics{Orders: "orders"}, noopOrder, nil)
	require.ErrorIs(t, err, sentinel)
	require.Nil(t, got)
}

func TestNewConsumer_SubscribesToConfiguredTopics(t *testing.T) {
	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	g := &fakeGroup{}
	newConsumerGroup = func(_ []string, groupID string, cfg *sarama.Config) (sarama.ConsumerGroup, error) {
		require.Equal(t, "gid", groupID)
		require.Equal(t, sarama.OffsetOldest, cfg.Consumer.Offsets.Initial)
		return g, nil
	}

	c, err := NewConsumer(testlog.New().Logger(), []string{"b:9092"}, "gid", Topics{Orders: "orders", Positions: "positions"}, noopOrder, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"orders"}, c.subscriptions())
}

func TestConsumer_RunRetriesUntilCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	g := &fakeGroup{consume: func(ctx context.Context, topics []string) error {
		require.Equal(t, []string{"orders", "positions"}, topics)
		if calls.Add(1) == 3 {
			cancel()
			return ctx.Err()
		}
		return errors.New("broker unavailable")
	}}

	rec := testlog.New()
	c := &Consumer{
		group:      g,
		topics:     Topics{Orders: "orders", Positions: "positions"},
		logger:     rec.Logger(),
		retryDelay: time.Millisecond,
	}

	err := c.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(3), calls.Load())
	require.Equal(t, 2, countMsg(rec.Entries(), "kafka consume error"))

	require.NoError(t, c.Close())
	require.True(t, g.closed.Load())
}

func TestConsumer_NilIsNoop(t *testing.T) {
	t.Parallel()

	var c *Consumer
	require.NoError(t, c.Run(context.Background()))
	require.NoError(t, c.Close())
}
