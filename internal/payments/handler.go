package payments

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/freightline-erp/freightline-erp/internal/platform/httpx"
	"github.com/freightline-erp/freightline-erp/internal/rpc"
)

// Handler wires the payment request endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	tripID, ok := urlID(w, r, "trip id required")
	if !ok {
		return
	}
	var req CreateRequest
	if err := httpx.BindAndValidate(r, &req); err != nil {
		rpc.WriteError(w, err)
		return
	}
	row, err := h.service.Create(r.Context(), tripID, req)
	if err != nil {
		h.logger.Error("create payment request", slog.String("trip_id", tripID), slog.Any("error", err))
		rpc.WriteError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, row)
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	requestID, ok := urlID(w, r, "payment request id required")
	if !ok {
		return
	}
	var req MarkPaidRequest
	if err := httpx.BindAndValidate(r, &req); err != nil {
		rpc.WriteError(w, err)
		return
	}
	row, err := h.service.MarkPaid(r.Context(), requestID, req)
	if err != nil {
		h.logger.Error("mark payment paid", slog.String("payment_request_id", requestID), slog.Any("error", err))
		rpc.WriteError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, row)
}

func (h *Handler) ListForTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := urlID(w, r, "trip id required")
	if !ok {
		return
	}
	rows, err := h.service.ListForTrip(r.Context(), tripID)
	if err != nil {
		h.logger.Error("list payment requests", slog.String("trip_id", tripID), slog.Any("error", err))
		rpc.WriteError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, rows)
}

func urlID(w http.ResponseWriter, r *http.Request, message string) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		httpx.Fail(w, http.StatusBadRequest, rpc.CodeInvalidInput, message)
		return "", false
	}
	return id, true
}
