package kafka

import (
	"fmt"
	"strings"
	"time"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/service/orders"
)

// OrderEventDTO is the wire form of an order event
type OrderEventDTO struct {
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts OrderEventDTO to orders.Event
func (dto OrderEventDTO) ToDomain() (orders.Event, error) {
	if dto.OrderID <= 0 {
		return orders.Event{}, fmt.Errorf("order event without order_id: %w", apperr.ErrInvalid)
	}
	// an unknown or missing priority leaves the stored order priority in charge
	var priority domain.Priority
	switch p := domain.Priority(strings.ToLower(strings.TrimSpace(dto.Priority))); p {
	case domain.PriorityNormal, domain.PriorityHigh:
		priority = p
	}
	return orders.Event{
		OrderID:   dto.OrderID,
		Status:    strings.TrimSpace(dto.Status),
		Priority:  priority,
		CreatedAt: dto.CreatedAt,
	}, nil
}

// PositionEventDTO is the wire form of a courier position report
type PositionEventDTO struct {
	CourierID int64    `json:"courier_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// ToDomain converts PositionEventDTO to domain.PositionUpdate
func (dto PositionEventDTO) ToDomain() (domain.PositionUpdate, error) {
	if dto.CourierID <= 0 || dto.Latitude == nil || dto.Longitude == nil {
		return domain.PositionUpdate{}, fmt.Errorf("incomplete position event: %w", apperr.ErrInvalid)
	}
	return domain.PositionUpdate{
		CourierID: dto.CourierID,
		Position:  domain.Coordinates{Lat: *dto.Latitude, Lng: *dto.Longitude},
		Accuracy:  dto.Accuracy,
	}, nil
}
