package handlers

import (
	"net/http"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
)

// CourierHandler serves courier position and availability endpoints.
type CourierHandler struct {
	tracker positionTracker
	fleet   availabilityReader
	logger  logx.Logger
}

// NewCourierHandler creates a new CourierHandler.
func NewCourierHandler(logger logx.Logger, tracker positionTracker, fleet availabilityReader) *CourierHandler {
	return &CourierHandler{tracker: tracker, fleet: fleet, logger: logger}
}

// UpdateLocation handles POST /couriers/{id}/location.
func (h *CourierHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	courierID, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var req locationRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	pos, ok := req.coordinates()
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	updated, err := h.tracker.UpdatePosition(r.Context(), domain.PositionUpdate{
		CourierID: courierID,
		Position:  pos,
		Accuracy:  req.Accuracy,
	})
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	if updated == nil {
		updated = []domain.EtaUpdate{}
	}
	writeJSON(h.logger, w, r, http.StatusOK, locationResponse{CourierID: courierID, Updated: updated})
}

// Availability handles GET /couriers/availability.
func (h *CourierHandler) Availability(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.fleet.Availability(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, fleet)
}
