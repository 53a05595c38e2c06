// Package shared holds the response helpers every handler uses so error
// envelopes stay uniform across the API.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "sentra/pkg/domain-errors"
)

// ErrorResponse is the uniform JSON error envelope.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON encodes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into its HTTP status and envelope.
// Unknown errors collapse to a bare 500 so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)

	resp := ErrorResponse{Error: string(code)}
	if status < http.StatusInternalServerError {
		resp.Description = err.Error()
	}
	WriteJSON(w, status, resp)
}
