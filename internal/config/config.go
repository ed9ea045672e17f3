package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

type Config struct {
	ListenAddr string
	BaseURL    string

	OAuth struct {
		ClientID     string
		ClientSecret string
		AuthURL      string
		TokenURL     string
		ProfileURL   string
		RedirectPath string
	}

	Backend struct {
		BaseURL string
	}

	PrometheusEnabled  bool
	DebugRoutesEnabled bool
	TrustedProxies     []string
	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{}

	cfg.ListenAddr = getenvDefault("APP_LISTEN_ADDR", ":8080")
	cfg.BaseURL = getenvDefault("APP_BASE_URL", "http://localhost:8080")

	cfg.OAuth.ClientID = os.Getenv("APP_OAUTH_CLIENT_ID")
	cfg.OAuth.ClientSecret = os.Getenv("APP_OAUTH_CLIENT_SECRET")
	cfg.OAuth.AuthURL = getenvDefault("APP_OAUTH_AUTH_URL", "https://id.nycu.edu.tw/o/authorize/")
	cfg.OAuth.TokenURL = getenvDefault("APP_OAUTH_TOKEN_URL", "https://id.nycu.edu.tw/o/token/")
	cfg.OAuth.ProfileURL = getenvDefault("APP_OAUTH_PROFILE_URL", "https://id.nycu.edu.tw/api/profile")
	cfg.OAuth.RedirectPath = getenvDefault("APP_OAUTH_REDIRECT_PATH", "/auth/callback")

	cfg.Backend.BaseURL = os.Getenv("APP_BACKEND_URL")

	cfg.PrometheusEnabled = getenvBool("APP_PROMETHEUS_ENDPOINT_ENABLED", false)
	cfg.DebugRoutesEnabled = getenvBool("APP_DEBUG_ROUTES_ENABLED", false)
	cfg.TrustedProxies = getenvList("APP_TRUSTED_PROXIES")
	cfg.CORSAllowedOrigins = getenvList("APP_CORS_ALLOWED_ORIGINS")

	if cfg.OAuth.ClientID == "" || cfg.OAuth.ClientSecret == "" {
		return nil, errors.New("oauth configuration is required: APP_OAUTH_CLIENT_ID and APP_OAUTH_CLIENT_SECRET")
	}
	if cfg.Backend.BaseURL == "" {
		return nil, errors.New("APP_BACKEND_URL is required")
	}
	if u, err := url.Parse(cfg.Backend.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("APP_BACKEND_URL is not a valid URL: %q", cfg.Backend.BaseURL)
	}
	if !strings.HasPrefix(cfg.OAuth.RedirectPath, "/") {
		return nil, fmt.Errorf("APP_OAUTH_REDIRECT_PATH must start with /, got %q", cfg.OAuth.RedirectPath)
	}

	if len(cfg.TrustedProxies) == 0 {
		fmt.Println("WARNING: No APP_TRUSTED_PROXIES configured. Goal Reacher will trust all proxies - Not recommended for public environments.")
	}

	return cfg, nil
}

// RedirectURL is the OAuth redirect URI registered with the identity provider.
func (c *Config) RedirectURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + c.OAuth.RedirectPath
}

// SecureCookies reports whether session cookies should carry the Secure flag.
func (c *Config) SecureCookies() bool {
	base, err := url.Parse(c.BaseURL)
	return err == nil && base.Scheme == "https"
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}

func getenvList(key string) []string {
	if v := os.Getenv(key); v != "" {
		var result []string
		for _, item := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return nil
}
