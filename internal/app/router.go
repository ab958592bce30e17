package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/freightline-erp/freightline-erp/internal/auth"
	"github.com/freightline-erp/freightline-erp/internal/observability"
	"github.com/freightline-erp/freightline-erp/internal/payments"
	"github.com/freightline-erp/freightline-erp/internal/shared"
	"github.com/freightline-erp/freightline-erp/internal/trips"
	"github.com/freightline-erp/freightline-erp/internal/uploads"
	"github.com/freightline-erp/freightline-erp/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	AuthHandler    *auth.Handler
	TripHandler    *trips.Handler
	PaymentHandler *payments.Handler
	UploadHandler  *uploads.Handler
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with gateway defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/trips", func(r chi.Router) {
			params.TripHandler.MountRoutes(r)
			params.PaymentHandler.MountTripRoutes(r)
		})
		r.Route("/payment-requests", params.PaymentHandler.MountRoutes)
		r.Route("/uploads", params.UploadHandler.MountRoutes)
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
