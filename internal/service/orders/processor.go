package orders

import (
	"context"
	"errors"
	"strings"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
)

// Processor turns order events into dispatch attempts.
type Processor struct {
	assigner Assigner
	logger   logx.Logger
	byStatus map[string]func(context.Context, Event) error
}

// NewProcessor creates a new orders.Processor
func NewProcessor(assigner Assigner, logger logx.Logger) *Processor {
	p := &Processor{assigner: assigner, logger: logx.OrNop(logger)}
	p.byStatus = map[string]func(context.Context, Event) error{
		StatusCreated: p.onCreated,
		// sent by the order service when a courier dropped an order
		StatusRequeued: p.onCreated,
	}
	return p
}

// Handle processes a single orders.Event. Statuses without an action are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.byStatus[strings.ToLower(strings.TrimSpace(e.Status))]
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	res, err := p.assigner.AutoAssign(ctx, e.OrderID, domain.AssignOptions{Priority: e.Priority})
	switch {
	case errors.Is(err, apperr.ErrAlreadyAssigned):
		// redelivered event, someone else got there first
		return nil
	case err != nil:
		return err
	}

	if res.RequiresManual {
		p.logger.Info("order left for manual dispatch",
			logx.Int64("order_id", e.OrderID),
			logx.String("reason", res.Reason),
		)
	}
	return nil
}
