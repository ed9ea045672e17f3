package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/goalreacher/goalreacher/internal/backend"
	"github.com/goalreacher/goalreacher/internal/config"
	"github.com/goalreacher/goalreacher/internal/http/webapi"
)

// Service is the session bridge: it converts an OAuth authorization code
// into the access_token session cookie and authenticates proxied requests.
type Service struct {
	cfg      *config.Config
	backend  *backend.Client
	resolver *Resolver
	oauth    *oauth2.Config

	// tokenClient bounds the token exchange; oauth2 falls back to
	// http.DefaultClient (no timeout) otherwise.
	tokenClient *http.Client
}

func NewService(cfg *config.Config, backendClient *backend.Client, resolver *Resolver) *Service {
	return &Service{
		cfg:      cfg,
		backend:  backendClient,
		resolver: resolver,
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			RedirectURL:  cfg.RedirectURL(),
			Scopes:       []string{"profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.OAuth.AuthURL,
				TokenURL: cfg.OAuth.TokenURL,
				// The provider expects client credentials as form
				// parameters, not basic auth.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		tokenClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// BeginOAuth redirects the browser to the provider's authorization page.
func (s *Service) BeginOAuth(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.oauth.AuthCodeURL(""), http.StatusFound)
}

// HandleOAuthCallback exchanges the authorization code for a token, fetches
// the profile, registers the user with the backend, and issues the session
// cookie. Each step fails closed: no cookie is set unless all three
// upstream calls succeed.
func (s *Service) HandleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	// An empty code is forwarded anyway; the provider rejects it and the
	// failure surfaces like any other exchange error.
	code := r.URL.Query().Get("code")

	ctx := context.WithValue(r.Context(), oauth2.HTTPClient, s.tokenClient)
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		webapi.InternalError(w, r, err, "Failed to exchange authorization code")
		return
	}

	ident, err := s.resolver.Resolve(r.Context(), token.AccessToken)
	if err != nil {
		webapi.InternalError(w, r, err, "Failed to fetch user profile")
		return
	}

	if _, err := s.backend.CreateUser(r.Context(), ident.Username, token.AccessToken, ident.Email); err != nil {
		webapi.InternalError(w, r, err, "Failed to create user")
		return
	}

	s.IssueSession(w, token.AccessToken)
	http.Redirect(w, r, "/welcome?status=ok", http.StatusFound)
}

// Logout clears the session cookie and returns to the landing page.
func (s *Service) Logout(w http.ResponseWriter, r *http.Request) {
	s.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// ErrNoSession is returned by Identify when the request carries no session
// cookie.
var ErrNoSession = errors.New("no session cookie")

// Identify resolves the identity behind a request's session cookie. Page
// handlers use it where a redirect, not a 401 envelope, is the right answer.
func (s *Service) Identify(r *http.Request) (*Identity, error) {
	token, ok := TokenFromRequest(r)
	if !ok {
		return nil, ErrNoSession
	}
	return s.resolver.Resolve(r.Context(), token)
}

// RequireSession authenticates a request via the session cookie, resolving
// the identity fresh from the provider. Absent or rejected tokens yield a
// 401 envelope before any backend call is made.
func (s *Service) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := TokenFromRequest(r)
		if !ok {
			webapi.Error(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		ident, err := s.resolver.Resolve(r.Context(), token)
		if err != nil {
			webapi.LogWarn(r, "identity resolution failed", err)
			webapi.Error(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		ctx := WithIdentity(r.Context(), ident)
		ctx = WithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
