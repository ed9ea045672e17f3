// Package webapi holds the JSON envelope helpers shared by the proxy and
// auth handlers. Every failure leaving this service is an {"error": ...}
// envelope; the real cause is logged with the request ID, never exposed.
package webapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// ErrorEnvelope is the uniform error body returned to the browser.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

// WriteRaw writes a pre-encoded JSON body verbatim with the given status.
func WriteRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Printf("[ERROR] write response: %v", err)
	}
}

// Error writes an error envelope without logging. Use for client mistakes
// that carry their own message (missing fields, absent cookies).
func Error(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorEnvelope{Error: message})
}

// InternalError logs the underlying cause with the request ID and returns a
// 500 envelope carrying only the operation-level message.
func InternalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logWith(r, "ERROR", message, err)
	WriteJSON(w, http.StatusInternalServerError, ErrorEnvelope{Error: message})
}

// LogError records a failure that has already been answered.
func LogError(r *http.Request, message string, err error) {
	logWith(r, "ERROR", message, err)
}

// LogWarn records a client-side mistake for visibility.
func LogWarn(r *http.Request, message string, err error) {
	logWith(r, "WARN", message, err)
}

func logWith(r *http.Request, level, message string, err error) {
	requestID := middleware.GetReqID(r.Context())
	if requestID != "" {
		log.Printf("[%s] RequestID=%s: %s: %v", level, requestID, message, err)
	} else {
		log.Printf("[%s] %s: %v", level, message, err)
	}
}
