package proxy

import (
	"net/http"

	"github.com/goalreacher/goalreacher/internal/auth"
	"github.com/goalreacher/goalreacher/internal/http/webapi"
)

// TestCookie echoes cookie presence for debugging login problems. It never
// reveals cookie values and is only routed when debug routes are enabled.
func (h *Handler) TestCookie(w http.ResponseWriter, r *http.Request) {
	token, hasToken := auth.TokenFromRequest(r)

	cookies := make([]map[string]any, 0, len(r.Cookies()))
	for _, c := range r.Cookies() {
		cookies = append(cookies, map[string]any{
			"name":     c.Name,
			"hasValue": c.Value != "",
		})
	}

	webapi.WriteJSON(w, http.StatusOK, map[string]any{
		"hasToken":    hasToken,
		"tokenLength": len(token),
		"allCookies":  cookies,
	})
}
