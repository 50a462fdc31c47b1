package domain

import "time"

// PositionUpdate is a courier GPS report.
type PositionUpdate struct {
	CourierID int64
	Position  Coordinates
	Accuracy  *float64
}

// PositionSample is one append-only row of courier position history.
type PositionSample struct {
	CourierID  int64
	Position   Coordinates
	Accuracy   *float64
	RecordedAt time.Time
}

// ActiveDelivery is an order currently carried by a courier.
type ActiveDelivery struct {
	OrderID          int64
	Status           OrderStatus
	Destination      *Coordinates
	EstimatedArrival *time.Time
}

// EtaUpdate reports an order whose ETA changed.
type EtaUpdate struct {
	OrderID          int64       `json:"order_id"`
	CourierID        int64       `json:"courier_id"`
	Status           OrderStatus `json:"status"`
	EstimatedArrival time.Time   `json:"estimated_arrival"`
	Degraded         bool        `json:"degraded"`
}

// EtaEvent is emitted to the notification collaborator.
type EtaEvent struct {
	OrderID          int64        `json:"order_id"`
	CourierID        *int64       `json:"courier_id,omitempty"`
	EstimatedArrival time.Time    `json:"estimated_arrival"`
	Status           *OrderStatus `json:"status,omitempty"`
}
