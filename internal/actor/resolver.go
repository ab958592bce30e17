// Package actor resolves the authenticated caller and its remote role.
package actor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/freightline-erp/freightline-erp/internal/rpc"
	"github.com/freightline-erp/freightline-erp/internal/shared"
)

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID     string
	Role   string
	Active bool
}

// Require returns ErrForbidden unless the actor's role is in the allow-list.
func (a *Actor) Require(roles ...string) error {
	for _, role := range roles {
		if a.Role == role {
			return nil
		}
	}
	return fmt.Errorf("role %s: %w", a.Role, shared.ErrForbidden)
}

// Resolver asserts the acting user against the remote profile layer. It is
// read-only: no business procedure is reached through it.
type Resolver struct {
	inv    rpc.Invoker
	chain  rpc.Chain
	logger *slog.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(inv rpc.Invoker, logger *slog.Logger) *Resolver {
	return &Resolver{
		inv:    inv,
		logger: logger,
		chain: rpc.Chain{
			Operation: "actor.assert",
			Variants: []rpc.Variant{
				{Procedure: "trip_assert_actor_v1"},
				{Procedure: "auth_get_my_profile_v1"},
			},
		},
	}
}

// Resolve returns the actor for the session user in ctx. A missing session,
// an unknown profile, or an inactive account all resolve to ErrUnauthorized.
func (r *Resolver) Resolve(ctx context.Context) (*Actor, error) {
	userID := shared.UserFromContext(ctx)
	if userID == "" {
		return nil, shared.ErrUnauthorized
	}

	rows, err := r.chain.Invoke(ctx, r.inv, userID, nil)
	if err != nil {
		if re := rpc.Classify(err); re.Status == 404 {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}

	row := rpc.First(rows)
	if row == nil {
		return nil, shared.ErrUnauthorized
	}

	act := &Actor{
		ID:     stringField(row, "id", userID),
		Role:   stringField(row, "role", ""),
		Active: boolField(row, "active"),
	}
	if act.Role == "" || !act.Active {
		if r.logger != nil {
			r.logger.Warn("inactive or roleless account", slog.String("user_id", userID))
		}
		return nil, shared.ErrUnauthorized
	}
	return act, nil
}

func stringField(row rpc.Row, key, fallback string) string {
	if v, ok := row[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func boolField(row rpc.Row, key string) bool {
	v, ok := row[key].(bool)
	return ok && v
}
