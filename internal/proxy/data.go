package proxy

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goalreacher/goalreacher/internal/auth"
	"github.com/goalreacher/goalreacher/internal/backend"
	"github.com/goalreacher/goalreacher/internal/http/webapi"
)

// SaveProgress forwards an arbitrary progress snapshot to the backend with
// the session-resolved userid injected. The body shape is owned by the
// backend contract; only presence is checked here.
func (h *Handler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var data map[string]json.RawMessage
	if err := decodeBody(w, r, &data); err != nil || len(data) == 0 {
		webapi.Error(w, http.StatusBadRequest, "Data is required")
		return
	}

	userid, _ := json.Marshal(ident.Username)
	data["userid"] = userid

	body, err := h.backend.SaveData(r.Context(), data)
	if err != nil {
		// The backend reports validation problems as {"detail": ...};
		// surface that text when present.
		var upstream *backend.UpstreamError
		if errors.As(err, &upstream) {
			var detail struct {
				Detail string `json:"detail"`
			}
			if jsonErr := json.Unmarshal(upstream.Body, &detail); jsonErr == nil && detail.Detail != "" {
				webapi.LogError(r, "save-data rejected", err)
				webapi.Error(w, http.StatusInternalServerError, detail.Detail)
				return
			}
		}
		webapi.InternalError(w, r, err, "Failed to save or update data")
		return
	}

	webapi.WriteRaw(w, http.StatusOK, body)
}

// GetStatus fetches the user's stored status from the backend.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	body, err := h.backend.GetStatus(r.Context(), ident.Username, ident.Email)
	relay(w, r, body, err, "Failed to get status")
}

// LoadEvents fetches the user's saved events, unwrapping the backend's
// {events: {data: [...]}} envelope into a bare array.
func (h *Handler) LoadEvents(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	body, err := h.backend.LoadData(r.Context(), ident.Username, ident.Email)
	if err != nil {
		webapi.InternalError(w, r, err, "Failed to load events")
		return
	}

	webapi.WriteRaw(w, http.StatusOK, backend.ExtractEvents(body))
}
