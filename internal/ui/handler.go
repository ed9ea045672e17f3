package ui

import (
	"fmt"
	"net/http"
	"time"

	"github.com/goalreacher/goalreacher/internal/auth"
	"github.com/goalreacher/goalreacher/internal/backend"
	"github.com/goalreacher/goalreacher/internal/config"
	"github.com/goalreacher/goalreacher/internal/http/webapi"
)

// Handler serves the server-rendered wizard and calendar pages.
type Handler struct {
	cfg         *config.Config
	authService *auth.Service
	backend     *backend.Client
}

func NewHandler(cfg *config.Config, authService *auth.Service, backendClient *backend.Client) *Handler {
	return &Handler{cfg: cfg, authService: authService, backend: backendClient}
}

// Home renders the landing page with the login entry point.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	_, loggedIn := auth.TokenFromRequest(r)
	h.render(w, "home.html", map[string]any{
		"Title":    "Goal Reacher",
		"LoggedIn": loggedIn,
	})
}

// Wizard renders the five-stage goal wizard shell. Stage transitions and
// proxy calls happen client-side against the /api routes.
func (h *Handler) Wizard(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.TokenFromRequest(r); !ok {
		http.Redirect(w, r, "/auth/login", http.StatusFound)
		return
	}
	h.render(w, "wizard.html", map[string]any{
		"Title": "Plan Your Goal",
	})
}

// Welcome is the post-login landing page, flashing the callback status.
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	h.render(w, "welcome.html", map[string]any{
		"Title":  "Welcome",
		"Status": r.URL.Query().Get("status"),
	})
}

// Calendar renders the weekly calendar. Events are loaded server-side and
// bucketed into the current week; completion toggles go through the proxy
// route with optimistic UI on the client.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	ident, err := h.authService.Identify(r)
	if err != nil {
		http.Redirect(w, r, "/auth/login", http.StatusFound)
		return
	}

	body, err := h.backend.LoadData(r.Context(), ident.Username, ident.Email)
	if err != nil {
		webapi.LogError(r, "load events for calendar", err)
		http.Error(w, "failed to load events", http.StatusInternalServerError)
		return
	}

	events, err := ParseEvents(backend.ExtractEvents(body))
	if err != nil {
		webapi.LogError(r, "parse events for calendar", err)
		http.Error(w, "failed to load events", http.StatusInternalServerError)
		return
	}

	weekStart := WeekStart(time.Now())
	buckets := FilterWeek(events, weekStart)

	days := make([]map[string]any, 0, 7)
	for i, dayEvents := range buckets {
		date := weekStart.AddDate(0, 0, i)
		days = append(days, map[string]any{
			"Name":   date.Weekday().String(),
			"Date":   date,
			"Events": dayEvents,
		})
	}

	h.render(w, "calendar.html", map[string]any{
		"Title":     "Your Week",
		"Username":  ident.Username,
		"WeekStart": weekStart,
		"Days":      days,
	})
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		http.Error(w, fmt.Sprintf("template error: %v", err), http.StatusInternalServerError)
	}
}
