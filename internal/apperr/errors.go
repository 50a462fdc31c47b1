package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Dispatch errors.
var (
	// ErrNoCouriersAvailable means no courier passed candidate selection.
	ErrNoCouriersAvailable = errors.New("no_couriers_available")
	// ErrAllCandidatesFailed means every candidate evaluation failed.
	ErrAllCandidatesFailed = errors.New("all_candidates_failed")
	// ErrProviderUnavailable is a recoverable routing provider failure.
	ErrProviderUnavailable = errors.New("route provider unavailable")
	// ErrPlanningTimeout means the planning pass ran out of time.
	ErrPlanningTimeout = errors.New("planning_timeout")
	// ErrDestinationMissing means the order has no usable destination coordinates.
	ErrDestinationMissing = errors.New("destination_missing")
)

// ErrOrderNotFound is a NotFound for orders.
var ErrOrderNotFound = fmt.Errorf("order %w", ErrNotFound)

// ErrCourierNotFound is a NotFound for couriers.
var ErrCourierNotFound = fmt.Errorf("courier %w", ErrNotFound)

// ErrAlreadyAssigned is a Conflict raised when an order is no longer unassigned.
var ErrAlreadyAssigned = fmt.Errorf("order already assigned: %w", ErrConflict)

// Code returns a stable machine-readable code for dispatch errors.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoCouriersAvailable):
		return "no_couriers_available"
	case errors.Is(err, ErrAllCandidatesFailed):
		return "all_candidates_failed"
	case errors.Is(err, ErrPlanningTimeout):
		return "planning_timeout"
	case errors.Is(err, ErrProviderUnavailable):
		return "provider_unavailable"
	case errors.Is(err, ErrDestinationMissing):
		return "destination_missing"
	case errors.Is(err, ErrAlreadyAssigned):
		return "already_assigned"
	case errors.Is(err, ErrOrderNotFound):
		return "order_not_found"
	case errors.Is(err, ErrCourierNotFound):
		return "courier_not_found"
	case errors.Is(err, ErrInvalid):
		return "invalid_input"
	default:
		return "internal"
	}
}
