package auth

import (
	"context"
	"fmt"

	"github.com/freightline-erp/freightline-erp/internal/rpc"
	"github.com/freightline-erp/freightline-erp/internal/shared"
)

// Repository resolves account rows for login.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
}

type rpcRepository struct {
	inv rpc.Invoker
}

// NewRepository constructs a Repository over the remote procedure layer.
func NewRepository(inv rpc.Invoker) Repository {
	return &rpcRepository{inv: inv}
}

func (r *rpcRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	rows, err := r.inv.Invoke(ctx, "auth_get_account_v1", []rpc.Arg{rpc.Named("p_email", email)})
	if err != nil {
		if re := rpc.Classify(err); re.Status == 404 {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth: find account: %w", err)
	}

	row := rpc.First(rows)
	if row == nil {
		return nil, shared.ErrInvalidCredentials
	}
	account := &Account{Email: email}
	if v, ok := row["id"].(string); ok {
		account.ID = v
	}
	if v, ok := row["passwordHash"].(string); ok {
		account.PasswordHash = v
	}
	if v, ok := row["role"].(string); ok {
		account.Role = v
	}
	if v, ok := row["active"].(bool); ok {
		account.Active = v
	}
	return account, nil
}
