package handlers

import (
	"time"

	"courier-dispatch/internal/domain"
)

type coordinatesRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (c coordinatesRequest) coordinates() (domain.Coordinates, bool) {
	if c.Latitude == nil || c.Longitude == nil {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Lat: *c.Latitude, Lng: *c.Longitude}, true
}

type planRequest struct {
	coordinatesRequest
	MaxActiveOrders int             `json:"max_active_orders,omitempty"`
	MaxDistanceKm   float64         `json:"max_distance_km,omitempty"`
	Priority        domain.Priority `json:"priority,omitempty"`
	ForceManual     bool            `json:"force_manual,omitempty"`
}

type planResponse struct {
	Recommended       domain.CandidateScore    `json:"recommended"`
	Alternatives      []domain.CandidateScore  `json:"alternatives"`
	TotalCandidates   int                      `json:"total_candidates"`
	Succeeded         int                      `json:"successful_calculations"`
	Errors            []domain.CandidateError  `json:"errors"`
	Mode              domain.Mode              `json:"mode"`
	SelectionCriteria domain.SelectionCriteria `json:"selection_criteria"`
}

type autoAssignRequest struct {
	MaxActiveOrders int             `json:"max_active_orders,omitempty"`
	MaxDistanceKm   float64         `json:"max_distance_km,omitempty"`
	Priority        domain.Priority `json:"priority,omitempty"`
	ForceManual     bool            `json:"force_manual,omitempty"`
	ActorID         *int64          `json:"actor_id,omitempty"`
}

type autoAssignResponse struct {
	OrderID           int64                  `json:"order_id"`
	Assigned          bool                   `json:"assigned"`
	RequiresManual    bool                   `json:"requires_manual_assignment"`
	Reason            string                 `json:"reason,omitempty"`
	Courier           *domain.CandidateScore `json:"courier,omitempty"`
	EstimatedArrival  *time.Time             `json:"estimated_arrival,omitempty"`
	AlternativesCount int                    `json:"alternatives_count"`
	Mode              domain.Mode            `json:"mode,omitempty"`
}

type locationRequest struct {
	coordinatesRequest
	Accuracy *float64 `json:"accuracy,omitempty"`
}

type locationResponse struct {
	CourierID int64              `json:"courier_id"`
	Updated   []domain.EtaUpdate `json:"updated_orders"`
}

func (r planRequest) toModel(dest domain.Coordinates) domain.PlanRequest {
	return domain.PlanRequest{
		Destination:     dest,
		MaxActiveOrders: r.MaxActiveOrders,
		MaxDistanceKm:   r.MaxDistanceKm,
		Priority:        r.Priority,
		ForceManual:     r.ForceManual,
	}
}

func (r autoAssignRequest) toModel() domain.AssignOptions {
	return domain.AssignOptions{
		Priority:        r.Priority,
		MaxActiveOrders: r.MaxActiveOrders,
		MaxDistanceKm:   r.MaxDistanceKm,
		ForceManual:     r.ForceManual,
		ActorID:         r.ActorID,
	}
}

func planToResponse(p domain.PlanResult) planResponse {
	alts := p.Alternatives
	if alts == nil {
		alts = []domain.CandidateScore{}
	}
	errs := p.Errors
	if errs == nil {
		errs = []domain.CandidateError{}
	}
	return planResponse{
		Recommended:       p.Recommended,
		Alternatives:      alts,
		TotalCandidates:   p.TotalCandidates,
		Succeeded:         p.Succeeded,
		Errors:            errs,
		Mode:              p.Mode,
		SelectionCriteria: p.Criteria,
	}
}

func assignToResponse(a domain.AssignResult) autoAssignResponse {
	return autoAssignResponse{
		OrderID:           a.OrderID,
		Assigned:          a.Assigned,
		RequiresManual:    a.RequiresManual,
		Reason:            a.Reason,
		Courier:           a.Courier,
		EstimatedArrival:  a.EstimatedArrival,
		AlternativesCount: a.AlternativesCount,
		Mode:              a.Mode,
	}
}
