package domain

import "time"

// DefaultCourierCapacity applies when a courier has no explicit limit.
const DefaultCourierCapacity = 3

// Courier is a delivery courier as seen by dispatch.
// Only the position fields are written by this service.
type Courier struct {
	ID                int64
	Name              string
	Phone             string
	VehicleType       string
	VehicleNumber     string
	Position          *Coordinates
	PositionAccuracy  *float64
	PositionUpdatedAt *time.Time
	MaxActiveOrders   int
	ActiveOrders      int
	Active            bool
}

// Capacity returns the maximum number of concurrent active orders.
func (c Courier) Capacity() int {
	if c.MaxActiveOrders <= 0 {
		return DefaultCourierCapacity
	}
	return c.MaxActiveOrders
}

// HasPosition reports whether the courier has a usable GPS position.
func (c Courier) HasPosition() bool {
	return c.Position != nil && c.Position.Valid()
}

// AvailabilityState is a coarse load label for fleet screens.
type AvailabilityState string

// Availability states.
const (
	AvailabilityAvailable AvailabilityState = "available"
	AvailabilityActive    AvailabilityState = "active"
	AvailabilityBusy      AvailabilityState = "busy"
	AvailabilityFull      AvailabilityState = "full"
)

// Availability derives the load label: full at capacity, busy from 70%.
func (c Courier) Availability() AvailabilityState {
	capacity := c.Capacity()
	switch {
	case c.ActiveOrders >= capacity:
		return AvailabilityFull
	case float64(c.ActiveOrders) >= float64(capacity)*0.7:
		return AvailabilityBusy
	case c.ActiveOrders > 0:
		return AvailabilityActive
	default:
		return AvailabilityAvailable
	}
}
