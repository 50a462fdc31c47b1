package handlers

import (
	"bytes"
	"io"
	"net/http"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
)

// DispatchHandler serves planning and assignment endpoints.
type DispatchHandler struct {
	planner  dispatchPlanner
	assigner autoAssigner
	logger   logx.Logger
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(logger logx.Logger, planner dispatchPlanner, assigner autoAssigner) *DispatchHandler {
	return &DispatchHandler{planner: planner, assigner: assigner, logger: logger}
}

func validPriority(p domain.Priority) bool {
	return p == "" || p == domain.PriorityNormal || p == domain.PriorityHigh
}

// Plan handles POST /dispatch/plan.
func (h *DispatchHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	dest, ok := req.coordinates()
	if !ok || !validPriority(req.Priority) || req.MaxActiveOrders < 0 || req.MaxDistanceKm < 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	res, err := h.planner.Plan(r.Context(), req.toModel(dest))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, planToResponse(res))
}

// ValidateAddress handles POST /dispatch/validate-address.
func (h *DispatchHandler) ValidateAddress(w http.ResponseWriter, r *http.Request) {
	var req coordinatesRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	dest, ok := req.coordinates()
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	res, err := h.planner.ValidateAddress(r.Context(), dest)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, res)
}

// AutoAssign handles POST /orders/{id}/auto-assign. The body is optional.
// A pass that needs a human still answers 200 with requires_manual_assignment set.
func (h *DispatchHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var req autoAssignRequest
	if ok := decodeOptionalJSON(h.logger, w, r, &req); !ok {
		return
	}
	if !validPriority(req.Priority) || req.MaxActiveOrders < 0 || req.MaxDistanceKm < 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	res, err := h.assigner.AutoAssign(r.Context(), orderID, req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignToResponse(res))
}

// decodeOptionalJSON is decodeJSON that accepts an empty body.
func decodeOptionalJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, bodyLimit))
	if err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid body")
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return decodeJSON(logger, w, r, dst)
}
