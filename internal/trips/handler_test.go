package trips_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightline-erp/freightline-erp/internal/actor"
	"github.com/freightline-erp/freightline-erp/internal/platform/httpx"
	"github.com/freightline-erp/freightline-erp/internal/rpc"
	"github.com/freightline-erp/freightline-erp/internal/shared"
	"github.com/freightline-erp/freightline-erp/internal/trips"
)

const actorProc = "trip_assert_actor_v1"

type fakeInvoker struct {
	role    string
	calls   []string
	respond func(procedure string, args []rpc.Arg) ([]rpc.Row, error)
}

func (f *fakeInvoker) Invoke(ctx context.Context, procedure string, args []rpc.Arg) ([]rpc.Row, error) {
	if procedure == actorProc {
		return []rpc.Row{{"id": "U1", "role": f.role, "active": true}}, nil
	}
	f.calls = append(f.calls, procedure)
	if f.respond == nil {
		return []rpc.Row{{"trip_id": "T1"}}, nil
	}
	return f.respond(procedure, args)
}

func newRouter(inv rpc.Invoker) http.Handler {
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	resolver := actor.NewResolver(inv, logger)
	handler := trips.NewHandler(logger, trips.NewService(inv, resolver, nil))
	r := chi.NewRouter()
	r.Route("/api/trips", handler.MountRoutes)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, httpx.Envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(shared.ContextWithSession(req.Context(), &shared.Session{ID: "s1", UserID: "U1"}))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	return res, env
}

func TestConfirmTripForbiddenBeforeRemoteCall(t *testing.T) {
	inv := &fakeInvoker{role: actor.RoleVendor}
	router := newRouter(inv)

	res, env := doJSON(t, router, http.MethodPost, "/api/trips/T1/confirm", map[string]any{
		"pickupLocation": "Nagpur",
		"dropLocation":   "Pune",
		"vehicleType":    "container",
		"vehicleLength":  "32ft",
		"scheduleDate":   "2026-09-01",
	})

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.False(t, env.OK)
	assert.Equal(t, "forbidden", env.Code)
	assert.Empty(t, inv.calls, "business procedure must not run for a forbidden role")
}

func TestConfirmTripMissingFieldBeforeRemoteCall(t *testing.T) {
	inv := &fakeInvoker{role: actor.RoleOps}
	router := newRouter(inv)

	res, env := doJSON(t, router, http.MethodPost, "/api/trips/T1/confirm", map[string]any{
		"pickupLocation": "Nagpur",
		"vehicleType":    "container",
		"vehicleLength":  "32ft",
		"scheduleDate":   "2026-09-01",
	})

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid_input", env.Code)
	assert.Contains(t, env.Message, "DropLocation")
	assert.Empty(t, inv.calls)
}

func TestConfirmTripAppliesCreditDaysDefault(t *testing.T) {
	inv := &fakeInvoker{role: actor.RoleOps, respond: func(procedure string, args []rpc.Arg) ([]rpc.Row, error) {
		return []rpc.Row{{"trip_id": "T1", "stage": "confirmed"}}, nil
	}}
	router := newRouter(inv)

	res, env := doJSON(t, router, http.MethodPost, "/api/trips/T1/confirm", map[string]any{
		"pickupLocation": "Nagpur",
		"dropLocation":   "Pune",
		"vehicleType":    "container",
		"vehicleLength":  "32ft",
		"scheduleDate":   "2026-09-01",
	})

	assert.Equal(t, http.StatusOK, res.Code)
	require.True(t, env.OK)
	data := env.Data.(map[string]any)
	assert.Equal(t, "confirmed", data["stage"])
	assert.Equal(t, float64(30), data["creditDays"])
}

func TestAssignVehicleFallsBackToV1(t *testing.T) {
	inv := &fakeInvoker{role: actor.RoleOps, respond: func(procedure string, args []rpc.Arg) ([]rpc.Row, error) {
		if procedure != "trip_assign_vehicle_v1" {
			return nil, &pgconn.PgError{Code: "42883", Message: "function " + procedure + " does not exist"}
		}
		return []rpc.Row{{"trip_id": "T1", "vehicle_id": "V1", "stage": "vehicle_assigned"}}, nil
	}}
	router := newRouter(inv)

	res, env := doJSON(t, router, http.MethodPost, "/api/trips/T1/assign-vehicle", map[string]any{
		"vehicleId": "V1",
	})

	assert.Equal(t, http.StatusOK, res.Code)
	require.True(t, env.OK)
	data := env.Data.(map[string]any)
	assert.Equal(t, "vehicle_assigned", data["stage"])
	assert.Equal(t, []string{
		"trip_assign_vehicle_v3",
		"trip_assign_vehicle_v2",
		"trip_assign_vehicle_v2",
		"trip_assign_vehicle_v1",
	}, inv.calls)
}

func TestAssignVehicleStopsAtNewestDeployedVersion(t *testing.T) {
	inv := &fakeInvoker{role: actor.RoleAdmin}
	router := newRouter(inv)

	res, _ := doJSON(t, router, http.MethodPost, "/api/trips/T1/assign-vehicle", map[string]any{
		"vehicleId": "V1",
		"driverId":  "D7",
	})

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, []string{"trip_assign_vehicle_v3"}, inv.calls)
}

func TestAssignVehicleRequiresVehicleID(t *testing.T) {
	inv := &fakeInvoker{role: actor.RoleOps}
	router := newRouter(inv)

	res, env := doJSON(t, router, http.MethodPost, "/api/trips/T1/assign-vehicle", map[string]any{
		"driverId": "D7",
	})

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid_input", env.Code)
	assert.Empty(t, inv.calls)
}

func TestAcceptRequiresVendorRole(t *testing.T) {
	inv := &fakeInvoker{role: actor.RoleCustomer}
	router := newRouter(inv)

	res, _ := doJSON(t, router, http.MethodPost, "/api/trips/T1/accept", nil)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Empty(t, inv.calls)
}

func TestLoadingProofRemoteBusinessError(t *testing.T) {
	inv := &fakeInvoker{role: actor.RoleDriver, respond: func(procedure string, args []rpc.Arg) ([]rpc.Row, error) {
		return nil, &pgconn.PgError{Code: "P0001", Message: "invalid_stage: trip not at loading"}
	}}
	router := newRouter(inv)

	res, env := doJSON(t, router, http.MethodPost, "/api/trips/T1/loading-proof", map[string]any{
		"objectKey":     "trips/T1/loading.jpg",
		"fileName":      "loading.jpg",
		"mimeType":      "image/jpeg",
		"fileSizeBytes": 20480,
	})

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid_input", env.Code)
	assert.Equal(t, "invalid_stage: trip not at loading", env.Message)
}

func TestDetailUnauthenticated(t *testing.T) {
	inv := &fakeInvoker{role: actor.RoleOps}
	router := newRouter(inv)

	req := httptest.NewRequest(http.MethodGet, "/api/trips/T1", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Empty(t, inv.calls)
}
