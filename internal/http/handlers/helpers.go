package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/logx"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Warn("json encode error", logx.String("req_id", reqID(r.Context())), logx.Err(err))
	}
}

type errResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeErrorCode(logger, w, r, status, msg, "")
}

func writeErrorCode(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg, code string) {
	logger.Info("http error",
		logx.String("req_id", reqID(r.Context())),
		logx.Int("status", status),
		logx.String("msg", msg),
		logx.String("code", code),
	)
	writeJSON(logger, w, r, status, errResponse{Error: msg, Code: code})
}

// writeServiceError maps dispatch errors to status codes.
func writeServiceError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code := apperr.Code(err)
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeErrorCode(logger, w, r, http.StatusBadRequest, "invalid input", code)
	case errors.Is(err, apperr.ErrNotFound):
		writeErrorCode(logger, w, r, http.StatusNotFound, "not found", code)
	case errors.Is(err, apperr.ErrConflict):
		writeErrorCode(logger, w, r, http.StatusConflict, "conflict", code)
	case errors.Is(err, apperr.ErrDestinationMissing):
		writeErrorCode(logger, w, r, http.StatusUnprocessableEntity, "order has no delivery coordinates", code)
	case errors.Is(err, apperr.ErrNoCouriersAvailable), errors.Is(err, apperr.ErrAllCandidatesFailed):
		writeErrorCode(logger, w, r, http.StatusConflict, "no courier can take the order", code)
	case errors.Is(err, apperr.ErrPlanningTimeout):
		writeErrorCode(logger, w, r, http.StatusGatewayTimeout, "planning timed out", code)
	case errors.Is(err, apperr.ErrProviderUnavailable):
		writeErrorCode(logger, w, r, http.StatusServiceUnavailable, "route provider unavailable", code)
	default:
		logger.Error("request failed", logx.String("req_id", reqID(r.Context())), logx.Err(err))
		writeErrorCode(logger, w, r, http.StatusInternalServerError, "internal error", code)
	}
}

const (
	bodyLimit = 1 << 20
)

func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	return true
}

func idFromURL(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
