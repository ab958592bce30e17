package actor

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightline-erp/freightline-erp/internal/rpc"
	"github.com/freightline-erp/freightline-erp/internal/shared"
)

type fakeInvoker struct {
	calls   []string
	respond func(procedure string) ([]rpc.Row, error)
}

func (f *fakeInvoker) Invoke(ctx context.Context, procedure string, args []rpc.Arg) ([]rpc.Row, error) {
	f.calls = append(f.calls, procedure)
	return f.respond(procedure)
}

func sessionCtx(userID string) context.Context {
	return shared.ContextWithSession(context.Background(), &shared.Session{ID: "s1", UserID: userID})
}

func TestResolveActiveActor(t *testing.T) {
	inv := &fakeInvoker{respond: func(string) ([]rpc.Row, error) {
		return []rpc.Row{{"id": "U1", "role": "ops", "active": true}}, nil
	}}

	act, err := NewResolver(inv, nil).Resolve(sessionCtx("U1"))
	require.NoError(t, err)
	assert.Equal(t, "U1", act.ID)
	assert.Equal(t, RoleOps, act.Role)
}

func TestResolveAnonymous(t *testing.T) {
	inv := &fakeInvoker{respond: func(string) ([]rpc.Row, error) {
		t.Fatal("remote must not be called for anonymous requests")
		return nil, nil
	}}

	_, err := NewResolver(inv, nil).Resolve(context.Background())
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	assert.Empty(t, inv.calls)
}

func TestResolveInactiveAccount(t *testing.T) {
	inv := &fakeInvoker{respond: func(string) ([]rpc.Row, error) {
		return []rpc.Row{{"id": "U1", "role": "ops", "active": false}}, nil
	}}

	_, err := NewResolver(inv, nil).Resolve(sessionCtx("U1"))
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestResolveUnknownProfileIsUnauthorized(t *testing.T) {
	inv := &fakeInvoker{respond: func(string) ([]rpc.Row, error) {
		return nil, &pgconn.PgError{Code: "P0002", Message: "actor not found"}
	}}

	_, err := NewResolver(inv, nil).Resolve(sessionCtx("U1"))
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestResolveFallsBackToProfileProcedure(t *testing.T) {
	inv := &fakeInvoker{respond: func(procedure string) ([]rpc.Row, error) {
		if procedure == "trip_assert_actor_v1" {
			return nil, &pgconn.PgError{Code: "42883", Message: "function does not exist"}
		}
		return []rpc.Row{{"id": "U1", "role": "finance", "active": true}}, nil
	}}

	act, err := NewResolver(inv, nil).Resolve(sessionCtx("U1"))
	require.NoError(t, err)
	assert.Equal(t, RoleFinance, act.Role)
	assert.Equal(t, []string{"trip_assert_actor_v1", "auth_get_my_profile_v1"}, inv.calls)
}

func TestRequire(t *testing.T) {
	act := &Actor{ID: "U1", Role: RoleVendor, Active: true}
	assert.NoError(t, act.Require(RoleVendor, RoleOps))
	assert.ErrorIs(t, act.Require(RoleFinance, RoleAdmin), shared.ErrForbidden)
}
