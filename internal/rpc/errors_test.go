package rpc

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/freightline-erp/freightline-erp/internal/shared"
)

func TestClassifyTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid parameter value", &pgconn.PgError{Code: "22023", Message: "amount out of range"}, http.StatusBadRequest, CodeInvalidInput},
		{"invalid text representation", &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}, http.StatusBadRequest, CodeInvalidInput},
		{"insufficient privilege", &pgconn.PgError{Code: "42501", Message: "permission denied"}, http.StatusForbidden, CodeForbidden},
		{"no data found", &pgconn.PgError{Code: "P0002", Message: "trip missing"}, http.StatusNotFound, CodeNotFound},
		{"business permission denied", &pgconn.PgError{Code: "P0001", Message: "permission_denied: wrong stage"}, http.StatusForbidden, CodeForbidden},
		{"business not found", &pgconn.PgError{Code: "P0001", Message: "not_found: payment request"}, http.StatusNotFound, CodeNotFound},
		{"business invalid", &pgconn.PgError{Code: "P0001", Message: "invalid_stage_transition"}, http.StatusBadRequest, CodeInvalidInput},
		{"unauthorized sentinel", shared.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
		{"forbidden sentinel", shared.ErrForbidden, http.StatusForbidden, CodeForbidden},
		{"missing procedure", fmt.Errorf("trips.confirm: %w", ErrMissingProcedure), http.StatusInternalServerError, CodeMissingProcedure},
		{"unmapped", errors.New("connection reset"), http.StatusInternalServerError, CodeRemoteFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			re := Classify(tc.err)
			assert.Equal(t, tc.status, re.Status)
			assert.Equal(t, tc.code, re.Code)
			assert.NotEmpty(t, re.Message)
		})
	}
}

func TestClassifyWrappedPgError(t *testing.T) {
	err := fmt.Errorf("rpc: trip_confirm_v2: %w", &pgconn.PgError{Code: "P0002", Message: "trip not found"})
	re := Classify(err)
	assert.Equal(t, http.StatusNotFound, re.Status)
	// Remote message passes through without the local wrapping prefix.
	assert.Equal(t, "trip not found", re.Message)
}

func TestIsUndefinedFunction(t *testing.T) {
	assert.True(t, IsUndefinedFunction(fmt.Errorf("rpc: x: %w", &pgconn.PgError{Code: "42883"})))
	assert.False(t, IsUndefinedFunction(&pgconn.PgError{Code: "42501"}))
	assert.False(t, IsUndefinedFunction(nil))
	assert.False(t, IsUndefinedFunction(errors.New("boom")))
}
