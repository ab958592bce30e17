package rpc

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/freightline-erp/freightline-erp/internal/shared"
)

// ErrMissingProcedure signals deployment skew: every known version of a
// procedure is absent remotely. Distinct from business errors.
var ErrMissingProcedure = errors.New("remote procedure missing")

// SQLSTATE codes the taxonomy recognizes.
const (
	codeInvalidParameterValue = "22023"
	codeInvalidTextRepr       = "22P02"
	codeInsufficientPrivilege = "42501"
	codeUndefinedFunction     = "42883"
	codeNoDataFound           = "P0002"
)

// Canonical machine codes carried in the response envelope.
const (
	CodeInvalidInput     = "invalid_input"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeMissingProcedure = "missing_procedure"
	CodeRemoteFailure    = "remote_failure"
)

// RemoteError is a remote failure mapped onto an HTTP status, a canonical
// machine code, and the remote message passed through verbatim.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return e.Message
}

// IsUndefinedFunction reports whether the error is SQLSTATE 42883. This is
// the only remote error that triggers version fallback.
func IsUndefinedFunction(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUndefinedFunction
}

// Classify maps any error onto the taxonomy. The mapping is total: every
// error reaches exactly one status.
func Classify(err error) *RemoteError {
	switch {
	case errors.Is(err, shared.ErrUnauthorized), errors.Is(err, shared.ErrInvalidCredentials):
		return &RemoteError{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: "authentication required"}
	case errors.Is(err, shared.ErrForbidden):
		return &RemoteError{Status: http.StatusForbidden, Code: CodeForbidden, Message: "operation not permitted"}
	case errors.Is(err, shared.ErrNotFound):
		return &RemoteError{Status: http.StatusNotFound, Code: CodeNotFound, Message: "not found"}
	case errors.Is(err, ErrMissingProcedure):
		return &RemoteError{Status: http.StatusInternalServerError, Code: CodeMissingProcedure, Message: err.Error()}
	}

	var re *RemoteError
	if errors.As(err, &re) {
		return re
	}

	message := err.Error()
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		message = pgErr.Message
		switch pgErr.Code {
		case codeInvalidParameterValue, codeInvalidTextRepr:
			return &RemoteError{Status: http.StatusBadRequest, Code: CodeInvalidInput, Message: message}
		case codeInsufficientPrivilege:
			return &RemoteError{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
		case codeNoDataFound:
			return &RemoteError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
		}
	}

	switch {
	case strings.Contains(message, "permission_denied"), strings.Contains(message, "forbidden"):
		return &RemoteError{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
	case strings.Contains(message, "not_found"):
		return &RemoteError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
	case strings.Contains(message, "invalid_"):
		return &RemoteError{Status: http.StatusBadRequest, Code: CodeInvalidInput, Message: message}
	}
	return &RemoteError{Status: http.StatusInternalServerError, Code: CodeRemoteFailure, Message: message}
}
