package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mode selects how routes are resolved for a whole planning pass.
type Mode string

// Dispatch modes.
const (
	// ModeLive asks the routing provider and degrades per candidate.
	ModeLive Mode = "live"
	// ModeManual always uses straight-line estimation.
	ModeManual Mode = "manual"
)

// RoutePreferences are passed through to the routing provider.
type RoutePreferences struct {
	TravelMode        string
	RoutingPreference string
	AvoidTolls        bool
	AvoidHighways     bool
	AvoidFerries      bool
}

// DefaultRoutePreferences is a traffic-aware drive.
func DefaultRoutePreferences() RoutePreferences {
	return RoutePreferences{TravelMode: "DRIVE", RoutingPreference: "TRAFFIC_AWARE_OPTIMAL"}
}

// RouteEstimate is a travel estimate between two points.
type RouteEstimate struct {
	DistanceMeters  int
	DurationSeconds int
	Polyline        string
	// Live is true when the estimate came from the routing provider.
	Live bool
}

// CandidateScore is one courier's evaluated standing for an order. Lower Score is better.
type CandidateScore struct {
	CourierID         int64      `json:"courier_id"`
	CourierName       string     `json:"courier_name"`
	CourierPhone      string     `json:"courier_phone"`
	VehicleType       string     `json:"vehicle_type"`
	VehicleNumber     string     `json:"vehicle_number"`
	ActiveOrders      int        `json:"active_orders"`
	Capacity          int        `json:"capacity"`
	DistanceMeters    int        `json:"distance_meters"`
	DurationSeconds   int        `json:"duration_seconds"`
	DistanceKm        float64    `json:"distance_km"`
	DurationMinutes   int        `json:"duration_minutes"`
	Polyline          string     `json:"polyline,omitempty"`
	HasPosition       bool       `json:"has_position"`
	PositionUpdatedAt *time.Time `json:"position_updated_at,omitempty"`
	Score             float64    `json:"score"`
	Mode              Mode       `json:"mode"`
	Degraded          bool       `json:"degraded"`
	DegradedReason    string     `json:"degraded_reason,omitempty"`
}

// PlanRequest describes one planning pass.
type PlanRequest struct {
	Destination Coordinates
	// MaxActiveOrders further limits candidate load when > 0.
	MaxActiveOrders int
	// MaxDistanceKm excludes farther candidates when > 0.
	MaxDistanceKm float64
	Priority      Priority
	ForceManual   bool
}

// CandidateError records a candidate excluded from ranking.
type CandidateError struct {
	CourierID   int64  `json:"courier_id"`
	CourierName string `json:"courier_name"`
	Reason      string `json:"error"`
}

// SelectionCriteria explains the ranking basis.
type SelectionCriteria struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tertiary  string `json:"tertiary"`
}

// CriteriaFor returns the selection criteria of a mode.
func CriteriaFor(mode Mode) SelectionCriteria {
	primary := "traffic_aware_duration"
	if mode == ModeManual {
		primary = "straight_line_distance"
	}
	return SelectionCriteria{Primary: primary, Secondary: "current_capacity", Tertiary: "distance"}
}

// PlanResult is the outcome of a successful planning pass.
type PlanResult struct {
	Recommended  CandidateScore
	Alternatives []CandidateScore
	Ranked       []CandidateScore
	// Evaluated holds every scored candidate, including those beyond the distance cap.
	Evaluated       []CandidateScore
	TotalCandidates int
	Succeeded       int
	Errors          []CandidateError
	Mode            Mode
	Criteria        SelectionCriteria
}

// DispatchDecision is the append-only audit record of an assignment.
type DispatchDecision struct {
	ID         uuid.UUID
	OrderID    int64
	CourierID  int64
	Chosen     CandidateScore
	Candidates []CandidateScore
	Total      int
	Mode       Mode
	ActorID    *int64
	DecidedAt  time.Time
}

// AssignOptions tune one AutoAssign call.
type AssignOptions struct {
	Priority        Priority
	MaxActiveOrders int
	MaxDistanceKm   float64
	ForceManual     bool
	ActorID         *int64
}

// AssignResult is the terminal outcome of AutoAssign.
type AssignResult struct {
	OrderID           int64
	Assigned          bool
	RequiresManual    bool
	Reason            string
	Courier           *CandidateScore
	EstimatedArrival  *time.Time
	AlternativesCount int
	Mode              Mode
}

// ServiceRadiusKm is the delivery area around the depot.
const ServiceRadiusKm = 50.0

// AddressCheck reports whether a destination can be served from the depot.
type AddressCheck struct {
	Routable             bool    `json:"routable"`
	DistanceKm           float64 `json:"distance_km"`
	DurationMinutes      int     `json:"duration_minutes"`
	WithinServiceArea    bool    `json:"within_service_area"`
	RequiresManualReview bool    `json:"requires_manual_review"`
	Reason               string  `json:"reason,omitempty"`
}
