package trips

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/freightline-erp/freightline-erp/internal/platform/httpx"
	"github.com/freightline-erp/freightline-erp/internal/rpc"
)

// Handler wires the trip stage-transition endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.tripID(w, r)
	if !ok {
		return
	}
	var req ConfirmTripRequest
	if err := httpx.BindAndValidate(r, &req); err != nil {
		rpc.WriteError(w, err)
		return
	}
	row, err := h.service.Confirm(r.Context(), tripID, req)
	if err != nil {
		h.logger.Error("confirm trip", slog.String("trip_id", tripID), slog.Any("error", err))
		rpc.WriteError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, row)
}

func (h *Handler) AssignVehicle(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.tripID(w, r)
	if !ok {
		return
	}
	var req AssignVehicleRequest
	if err := httpx.BindAndValidate(r, &req); err != nil {
		rpc.WriteError(w, err)
		return
	}
	row, err := h.service.AssignVehicle(r.Context(), tripID, req)
	if err != nil {
		h.logger.Error("assign vehicle", slog.String("trip_id", tripID), slog.Any("error", err))
		rpc.WriteError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, row)
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.tripID(w, r)
	if !ok {
		return
	}
	row, err := h.service.Accept(r.Context(), tripID)
	if err != nil {
		h.logger.Error("accept trip request", slog.String("trip_id", tripID), slog.Any("error", err))
		rpc.WriteError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, row)
}

func (h *Handler) LoadingProof(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.tripID(w, r)
	if !ok {
		return
	}
	var req LoadingProofRequest
	if err := httpx.BindAndValidate(r, &req); err != nil {
		rpc.WriteError(w, err)
		return
	}
	row, err := h.service.ConfirmLoadingProof(r.Context(), tripID, req)
	if err != nil {
		h.logger.Error("loading proof confirm", slog.String("trip_id", tripID), slog.Any("error", err))
		rpc.WriteError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, row)
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.tripID(w, r)
	if !ok {
		return
	}
	row, err := h.service.Detail(r.Context(), tripID)
	if err != nil {
		h.logger.Error("trip detail", slog.String("trip_id", tripID), slog.Any("error", err))
		rpc.WriteError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, row)
}

func (h *Handler) tripID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		httpx.Fail(w, http.StatusBadRequest, rpc.CodeInvalidInput, "trip id required")
		return "", false
	}
	return id, true
}
