// Package proxy implements the browser-facing JSON routes. Each handler is
// a single request-scoped chain: validate the payload, forward one call to
// the planning backend, and relay the JSON result.
package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/goalreacher/goalreacher/internal/backend"
	"github.com/goalreacher/goalreacher/internal/config"
	"github.com/goalreacher/goalreacher/internal/http/webapi"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	cfg     *config.Config
	backend *backend.Client
}

func NewHandler(cfg *config.Config, backendClient *backend.Client) *Handler {
	return &Handler{cfg: cfg, backend: backendClient}
}

// decodeBody decodes the request body into dst, rejecting oversized bodies.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// hasValue reports whether an optional JSON field carries a usable value.
// Absent and falsy fields (null, empty string, false, zero) all count as
// missing, mirroring the wizard's presence checks.
func hasValue(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", `""`, "false", "0":
		return false
	}
	return true
}

// relay writes the backend body verbatim on success and converts failures
// into the uniform 500 envelope, logging the differentiated cause.
func relay(w http.ResponseWriter, r *http.Request, body json.RawMessage, err error, failMessage string) {
	if err != nil {
		webapi.InternalError(w, r, err, failMessage)
		return
	}
	webapi.WriteRaw(w, http.StatusOK, body)
}
