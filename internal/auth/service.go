package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/freightline-erp/freightline-erp/internal/shared"
)

// Service verifies credentials against the remote account row.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Login returns the account when the credentials match an active account.
// Every failure mode resolves to ErrInvalidCredentials so callers cannot
// distinguish unknown accounts from wrong passwords.
func (s *Service) Login(ctx context.Context, email, password string) (*Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return account, nil
}
