package uploads

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/freightline-erp/freightline-erp/internal/platform/httpx"
	"github.com/freightline-erp/freightline-erp/internal/rpc"
)

// maxUploadBytes caps what the gateway will relay in one request.
const maxUploadBytes = 25 << 20

// Handler wires the upload endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers upload routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Upload)
	r.Get("/view-url", h.ViewURL)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Fail(w, http.StatusBadRequest, rpc.CodeInvalidInput, "multipart body required")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, rpc.CodeInvalidInput, "file field required")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, rpc.CodeInvalidInput, "unreadable file")
		return
	}
	if len(body) == 0 {
		httpx.Fail(w, http.StatusBadRequest, rpc.CodeInvalidInput, "empty file")
		return
	}
	if len(body) > maxUploadBytes {
		httpx.Fail(w, http.StatusBadRequest, rpc.CodeInvalidInput, "file too large")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	result, err := h.service.Upload(r.Context(), header.Filename, mimeType, body)
	if err != nil {
		h.logger.Error("upload", slog.String("file_name", header.Filename), slog.Any("error", err))
		rpc.WriteError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, result)
}

func (h *Handler) ViewURL(w http.ResponseWriter, r *http.Request) {
	objectKey := strings.TrimSpace(r.URL.Query().Get("objectKey"))
	if objectKey == "" {
		httpx.Fail(w, http.StatusBadRequest, rpc.CodeInvalidInput, "objectKey required")
		return
	}

	url, err := h.service.ViewURL(r.Context(), objectKey)
	if err != nil {
		h.logger.Error("view url", slog.String("object_key", objectKey), slog.Any("error", err))
		rpc.WriteError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]string{"objectKey": objectKey, "url": url})
}
