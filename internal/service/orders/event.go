package orders

import (
	"time"

	"courier-dispatch/internal/domain"
)

// Order event statuses understood by the Processor.
const (
	StatusCreated  = "created"
	StatusRequeued = "requeued"
)

// Event is a single order event
type Event struct {
	OrderID   int64
	Status    string
	Priority  domain.Priority
	CreatedAt time.Time
}
