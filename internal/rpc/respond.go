package rpc

import (
	"errors"
	"net/http"

	"github.com/freightline-erp/freightline-erp/internal/platform/httpx"
)

// WriteError maps any handler error through the taxonomy and writes the
// failure envelope. Local validation errors short-circuit before remote
// classification.
func WriteError(w http.ResponseWriter, err error) {
	var verr *httpx.ValidationError
	if errors.As(err, &verr) {
		httpx.Fail(w, http.StatusBadRequest, CodeInvalidInput, verr.Error())
		return
	}
	re := Classify(err)
	httpx.Fail(w, re.Status, re.Code, re.Message)
}
