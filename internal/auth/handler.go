package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/freightline-erp/freightline-erp/internal/actor"
	"github.com/freightline-erp/freightline-erp/internal/platform/httpx"
	"github.com/freightline-erp/freightline-erp/internal/rpc"
	"github.com/freightline-erp/freightline-erp/internal/shared"
)

// Handler wires session endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	sessions *shared.SessionManager
	resolver *actor.Resolver
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager, resolver *actor.Resolver) *Handler {
	return &Handler{logger: logger, service: service, sessions: sessions, resolver: resolver}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/me", h.me)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Normalize trims whitespace off the email before validation.
func (r *loginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.BindAndValidate(r, &req); err != nil {
		rpc.WriteError(w, err)
		return
	}

	account, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("login rejected", slog.String("email", req.Email))
		rpc.WriteError(w, err)
		return
	}

	sess, err := h.sessions.Create(r.Context(), account.ID)
	if err != nil {
		h.logger.Error("create session", slog.Any("error", err))
		rpc.WriteError(w, err)
		return
	}
	h.sessions.WriteCookie(w, sess)

	httpx.OK(w, http.StatusOK, map[string]any{
		"token":     sess.ID,
		"expiresIn": int64(h.sessions.TTL().Seconds()),
		"actor":     map[string]string{"id": account.ID, "role": account.Role},
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		rpc.WriteError(w, shared.ErrUnauthorized)
		return
	}
	if err := h.sessions.Destroy(r.Context(), sess); err != nil {
		h.logger.Error("destroy session", slog.Any("error", err))
		rpc.WriteError(w, err)
		return
	}
	h.sessions.ClearCookie(w)
	httpx.OK(w, http.StatusOK, nil)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	act, err := h.resolver.Resolve(r.Context())
	if err != nil {
		rpc.WriteError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{
		"id":     act.ID,
		"role":   act.Role,
		"active": act.Active,
	})
}
