package auth

import (
	"net/http"
)

const (
	// CookieName matches what the wizard front end reads for its own
	// presence checks; the value is the provider's bearer token.
	CookieName = "access_token"

	// cookieMaxAge mirrors the provider token lifetime. Sessions are never
	// refreshed; a new login overwrites the cookie wholesale.
	cookieMaxAge = 3600
)

// IssueSession sets the session cookie carrying the access token.
func (s *Service) IssueSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession removes the session cookie.
func (s *Service) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest reads the bearer token from the session cookie.
func TokenFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
