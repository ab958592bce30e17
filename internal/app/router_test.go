package app_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/freightline-erp/freightline-erp/internal/actor"
	"github.com/freightline-erp/freightline-erp/internal/app"
	"github.com/freightline-erp/freightline-erp/internal/auth"
	"github.com/freightline-erp/freightline-erp/internal/observability"
	"github.com/freightline-erp/freightline-erp/internal/payments"
	"github.com/freightline-erp/freightline-erp/internal/rpc"
	"github.com/freightline-erp/freightline-erp/internal/shared"
	"github.com/freightline-erp/freightline-erp/internal/trips"
	"github.com/freightline-erp/freightline-erp/internal/uploads"
)

type stubInvoker struct{}

func (stubInvoker) Invoke(ctx context.Context, procedure string, args []rpc.Arg) ([]rpc.Row, error) {
	return []rpc.Row{{"id": "U1", "role": actor.RoleOps, "active": true}}, nil
}

type stubPresigner struct{}

func (stubPresigner) PreparePut(ctx context.Context, req uploads.PrepareRequest) (*uploads.PresignedUpload, error) {
	return &uploads.PresignedUpload{URL: "https://storage.example.com/put", ObjectKey: "obj"}, nil
}

func (stubPresigner) PresignGet(ctx context.Context, objectKey string) (*uploads.PresignedView, error) {
	return &uploads.PresignedView{URL: "https://storage.example.com/get"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.Default()
	cfg := &app.Config{AppEnv: "development", AppRequestTimeout: 30 * time.Second}
	sessions := shared.NewSessionManager(client, "freightline_session", time.Hour, false)
	inv := stubInvoker{}
	resolver := actor.NewResolver(inv, logger)

	authHandler := auth.NewHandler(logger, auth.NewService(auth.NewRepository(inv)), sessions, resolver)
	tripHandler := trips.NewHandler(logger, trips.NewService(inv, resolver, nil))
	paymentHandler := payments.NewHandler(logger, payments.NewService(inv, resolver, nil, logger, nil))
	cacheSvc := uploads.NewViewURLCache(client, time.Minute, 10)
	uploadHandler := uploads.NewHandler(logger, uploads.NewService(stubPresigner{}, cacheSvc, inv, resolver, logger, uploads.ServiceConfig{}))

	return app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessions,
		AuthHandler:    authHandler,
		TripHandler:    tripHandler,
		PaymentHandler: paymentHandler,
		UploadHandler:  uploadHandler,
		Metrics:        observability.NewMetrics(),
	})
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "freightline_http_requests_total")
}

func TestAnonymousTripDetailUnauthorized(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trips/T1", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
