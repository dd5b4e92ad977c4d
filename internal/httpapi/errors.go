// Package httpapi exposes the product catalog over HTTP.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// errorBody is the JSON error payload.
type errorBody struct {
	Detail string `json:"detail"`
}

// writeJSON writes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a {"detail": ...} payload with the given status code.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}
