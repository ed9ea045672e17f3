package proxy

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goalreacher/goalreacher/internal/auth"
	"github.com/goalreacher/goalreacher/internal/backend"
	"github.com/goalreacher/goalreacher/internal/http/webapi"
)

// ToggleEvent sets an event's completion flag. The flag is forwarded
// absolutely, so repeating the same request is idempotent. Backend
// rejections pass through with their original status and diagnostics.
func (h *Handler) ToggleEvent(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		EventID json.RawMessage `json:"eventId"`
		IsDone  *bool           `json:"isDone"`
	}
	if err := decodeBody(w, r, &req); err != nil || !hasValue(req.EventID) || req.IsDone == nil {
		webapi.Error(w, http.StatusBadRequest, "Missing eventId or isDone parameter")
		return
	}

	body, err := h.backend.ToggleEvent(r.Context(), req.EventID, *req.IsDone, ident.Username)
	if err != nil {
		var upstream *backend.UpstreamError
		if errors.As(err, &upstream) {
			var details any = json.RawMessage(upstream.Body)
			if !json.Valid(upstream.Body) {
				details = string(upstream.Body)
			}
			webapi.LogError(r, "toggle rejected by backend", err)
			webapi.WriteJSON(w, upstream.StatusCode, map[string]any{
				"error":   "Failed to toggle event status",
				"details": details,
			})
			return
		}
		webapi.InternalError(w, r, err, "Failed to toggle event status")
		return
	}

	webapi.WriteRaw(w, http.StatusOK, body)
}
