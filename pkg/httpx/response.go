package httpx

import (
	"encoding/json"
	"net/http"
)

// Result is the response envelope every accounts endpoint returns.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// WriteJSON writes v as JSON with the given status code and no-store cache
// headers (responses often carry tokens).
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope.
func WriteSuccess(w http.ResponseWriter, code int, message string, data any) {
	WriteJSON(w, code, Result{Success: true, Message: message, Data: data})
}

// WriteError writes a failure envelope.
func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, Result{Success: false, Message: message})
}

// NoCache marks the response as non-cacheable.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
