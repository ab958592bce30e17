package shared

import "errors"

var (
	// ErrUnauthorized indicates a missing or rejected session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the actor's role is not permitted for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
