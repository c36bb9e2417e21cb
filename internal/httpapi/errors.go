package httpapi

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"

	"modelpack/internal/picklable"
	"modelpack/internal/store"
	"modelpack/internal/wordvec"
	"modelpack/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		return he.StatusCode()
	case store.IsModelNotFound(err), picklable.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidRequest), errors.Is(err, wordvec.ErrInvalidInput), store.IsUnknownFormat(err):
		return http.StatusBadRequest
	case picklable.IsDependencyUnavailable(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, wordvec.ErrInvalidMagic), errors.Is(err, wordvec.ErrUnsupportedVersion),
		errors.Is(err, wordvec.ErrChecksumMismatch), errors.Is(err, wordvec.ErrTruncated):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigStd.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}
