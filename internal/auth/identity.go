package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goalreacher/goalreacher/internal/metrics"
)

// Identity is the user profile fetched from the identity provider. It is
// never stored locally; every request that needs it resolves it fresh from
// the session token.
type Identity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Resolver fetches identities from the provider's profile endpoint.
type Resolver struct {
	profileURL string
	httpClient *http.Client
}

func NewResolver(profileURL string) *Resolver {
	return &Resolver{
		profileURL: profileURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Resolve exchanges a bearer token for the user's profile. Any failure is
// returned to the caller so it can fail closed; requests never proceed with
// an unresolved identity.
func (rs *Resolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rs.profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := rs.httpClient.Do(req)
	metrics.ObserveUpstreamLatency(ctx, "identity/profile", start)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile endpoint returned status %d", resp.StatusCode)
	}

	var ident Identity
	if err := json.NewDecoder(resp.Body).Decode(&ident); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if ident.Username == "" {
		return nil, errors.New("profile response missing username")
	}

	return &ident, nil
}
