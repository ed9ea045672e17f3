package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goalreacher/goalreacher/internal/auth"
	"github.com/goalreacher/goalreacher/internal/backend"
	"github.com/goalreacher/goalreacher/internal/config"
)

func newPageHandler(t *testing.T, profileStatus int, loadBody string) *Handler {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(profileStatus)
		if profileStatus == http.StatusOK {
			_, _ = w.Write([]byte(`{"username":"alice","email":"alice@example.edu"}`))
		}
	}))
	t.Cleanup(provider.Close)

	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(loadBody))
	}))
	t.Cleanup(backendSrv.Close)

	cfg := &config.Config{}
	cfg.BaseURL = "http://localhost:8080"
	cfg.OAuth.ProfileURL = provider.URL

	backendClient := backend.NewClient(backendSrv.URL)
	authService := auth.NewService(cfg, backendClient, auth.NewResolver(cfg.OAuth.ProfileURL))

	return NewHandler(cfg, authService, backendClient)
}

func TestCalendarRedirectsWithoutSession(t *testing.T) {
	h := newPageHandler(t, http.StatusOK, `{}`)

	w := httptest.NewRecorder()
	h.Calendar(w, httptest.NewRequest("GET", "/calendar", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/auth/login" {
		t.Errorf("redirect = %s, want /auth/login", loc)
	}
}

func TestCalendarRendersWeek(t *testing.T) {
	loadBody := `{"events":{"data":[{"id":"e1","summary":"Practice scales","start":"2026-08-24T09:00:00Z","complete":false}]}}`
	h := newPageHandler(t, http.StatusOK, loadBody)

	req := httptest.NewRequest("GET", "/calendar", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "tok-1"})
	w := httptest.NewRecorder()
	h.Calendar(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	if !strings.Contains(body, "alice") {
		t.Error("calendar page missing username")
	}
	for _, day := range []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"} {
		if !strings.Contains(body, day) {
			t.Errorf("calendar page missing %s column", day)
		}
	}
}

func TestCalendarRejectedSessionRedirects(t *testing.T) {
	h := newPageHandler(t, http.StatusUnauthorized, `{}`)

	req := httptest.NewRequest("GET", "/calendar", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "stale"})
	w := httptest.NewRecorder()
	h.Calendar(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", w.Code)
	}
}

func TestWelcomeShowsStatusFlash(t *testing.T) {
	h := newPageHandler(t, http.StatusOK, `{}`)

	w := httptest.NewRecorder()
	h.Welcome(w, httptest.NewRequest("GET", "/welcome?status=ok", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "logged in successfully") {
		t.Error("welcome page missing login flash")
	}
}
