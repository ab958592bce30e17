package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError aggregates every failed rule for a request body.
type ValidationError struct {
	Fields []FieldError
}

// Error renders the field list as a single message.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

// Normalizer lets request DTOs trim and default-fill fields between decoding
// and validation.
type Normalizer interface {
	Normalize()
}

// BindAndValidate decodes the JSON body into dst, normalizes it when the DTO
// supports it, and validates it. A malformed body or a failed rule is
// reported as *ValidationError.
func BindAndValidate(r *http.Request, dst any) error {
	if err := DecodeJSON(r, dst); err != nil {
		return &ValidationError{Fields: []FieldError{{Field: "body", Rule: "json"}}}
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	return ValidateStruct(dst)
}

// ValidateStruct runs the shared validator over an already-decoded struct.
func ValidateStruct(dst any) error {
	if err := validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return err
		}
		verr := &ValidationError{}
		for _, fieldErr := range err.(validator.ValidationErrors) {
			verr.Fields = append(verr.Fields, FieldError{Field: fieldErr.Field(), Rule: fieldErr.Tag()})
		}
		return verr
	}
	return nil
}
