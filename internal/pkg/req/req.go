/*
Package req provides helpers for HTTP request parsing and data binding.

It encapsulates strict JSON body binding so handlers reject malformed payloads
before touching business logic.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"pandacare/internal/pkg/errs"
)

// MaxBodySize is the maximum allowed request body size (1 MB). The BFF only
// carries small JSON documents; anything larger is rejected outright.
const MaxBodySize int64 = 1 << 20

// BindJSON binds the JSON request body to dst. Unknown fields and trailing
// content are rejected.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
