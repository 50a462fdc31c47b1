package domain

import "time"

// OrderStatus is the delivery status of an order.
type OrderStatus string

// List of order statuses in lifecycle order.
const (
	OrderUnassigned OrderStatus = "unassigned"
	OrderAssigned   OrderStatus = "assigned"
	OrderPickedUp   OrderStatus = "picked-up"
	OrderInTransit  OrderStatus = "in-transit"
	OrderDelivered  OrderStatus = "delivered"
	OrderFailed     OrderStatus = "failed"
	OrderCancelled  OrderStatus = "cancelled"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderUnassigned, OrderAssigned, OrderPickedUp, OrderInTransit,
	OrderDelivered, OrderFailed, OrderCancelled,
}

// ActiveOrderStatuses are the statuses that count against courier capacity.
var ActiveOrderStatuses = []OrderStatus{OrderAssigned, OrderPickedUp, OrderInTransit}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Active reports whether the order is on its way with a courier.
func (s OrderStatus) Active() bool {
	for _, v := range ActiveOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Priority of an order.
type Priority string

// Order priorities.
const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Order is a delivery order.
type Order struct {
	ID               int64
	Destination      *Coordinates
	CourierID        *int64
	Status           OrderStatus
	Priority         Priority
	EstimatedArrival *time.Time
	AssignedAt       *time.Time
}

// HasDestination reports whether the order can be routed to.
func (o Order) HasDestination() bool {
	return o.Destination != nil && o.Destination.Valid()
}
