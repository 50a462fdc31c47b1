package courier

import (
	"context"
	"fmt"
	"time"

	"courier-dispatch/internal/domain"
)

// Availability is the load of one active courier.
type Availability struct {
	CourierID         int64                    `json:"courier_id"`
	Name              string                   `json:"name"`
	Phone             string                   `json:"phone"`
	VehicleType       string                   `json:"vehicle_type"`
	ActiveOrders      int                      `json:"active_orders"`
	Capacity          int                      `json:"capacity"`
	Remaining         int                      `json:"remaining_capacity"`
	State             domain.AvailabilityState `json:"state"`
	HasPosition       bool                     `json:"has_position"`
	PositionUpdatedAt *time.Time               `json:"position_updated_at,omitempty"`
}

// Fleet is the availability of all active couriers.
type Fleet struct {
	Couriers []Availability                   `json:"couriers"`
	ByState  map[domain.AvailabilityState]int `json:"by_state"`
	// Free is the number of orders the fleet can still take.
	Free int `json:"free_capacity"`
}

// Service reports courier load.
type Service struct {
	repo             courierRepository
	operationTimeout time.Duration
}

// NewService creates and configures a courier Service.
func NewService(r courierRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

// Availability lists active couriers with their load and totals per state.
func (s *Service) Availability(ctx context.Context) (Fleet, error) {
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	couriers, err := s.repo.ListActive(ctx)
	if err != nil {
		return Fleet{}, fmt.Errorf("list couriers: %w", err)
	}

	fleet := Fleet{
		Couriers: make([]Availability, 0, len(couriers)),
		ByState: map[domain.AvailabilityState]int{
			domain.AvailabilityAvailable: 0,
			domain.AvailabilityActive:    0,
			domain.AvailabilityBusy:      0,
			domain.AvailabilityFull:      0,
		},
	}
	for _, c := range couriers {
		a := toAvailability(c)
		fleet.Couriers = append(fleet.Couriers, a)
		fleet.ByState[a.State]++
		fleet.Free += a.Remaining
	}
	return fleet, nil
}

func toAvailability(c domain.Courier) Availability {
	capacity := c.Capacity()
	return Availability{
		CourierID:         c.ID,
		Name:              c.Name,
		Phone:             c.Phone,
		VehicleType:       c.VehicleType,
		ActiveOrders:      c.ActiveOrders,
		Capacity:          capacity,
		Remaining:         max(capacity-c.ActiveOrders, 0),
		State:             c.Availability(),
		HasPosition:       c.HasPosition(),
		PositionUpdatedAt: c.PositionUpdatedAt,
	}
}
