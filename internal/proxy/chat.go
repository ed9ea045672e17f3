package proxy

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/goalreacher/goalreacher/internal/http/webapi"
)

// GenerateGoal refines a free-form goal statement.
func (h *Handler) GenerateGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goal string `json:"goal"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		webapi.Error(w, http.StatusBadRequest, "Goal is required")
		return
	}
	if req.Goal == "" {
		webapi.Error(w, http.StatusBadRequest, "Goal is required")
		return
	}

	body, err := h.backend.GenerateGoal(r.Context(), req.Goal)
	relay(w, r, body, err, "Failed to generate goal")
}

// GenerateMilestones derives milestones from the goal and current status.
func (h *Handler) GenerateMilestones(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goal   string          `json:"goal"`
		Status json.RawMessage `json:"status"`
	}
	if err := decodeBody(w, r, &req); err != nil || req.Goal == "" || !hasValue(req.Status) {
		webapi.Error(w, http.StatusBadRequest, "Goal and status are required")
		return
	}

	body, err := h.backend.GenerateMilestones(r.Context(), req.Goal, req.Status)
	relay(w, r, body, err, "Failed to generate milestones")
}

// GenerateMissions derives concrete missions from the milestone list.
func (h *Handler) GenerateMissions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goal       string          `json:"goal"`
		Status     json.RawMessage `json:"status"`
		Milestones json.RawMessage `json:"milestones"`
	}
	if err := decodeBody(w, r, &req); err != nil || req.Goal == "" || !hasValue(req.Status) || !hasValue(req.Milestones) {
		webapi.Error(w, http.StatusBadRequest, "Goal, status, and milestones are required")
		return
	}

	body, err := h.backend.GenerateMissions(r.Context(), req.Goal, req.Status, req.Milestones)
	relay(w, r, body, err, "Failed to generate missions")
}

// GenerateSchedules turns missions into calendar events anchored at today,
// defaulting to the server's current date when the client omits it.
func (h *Handler) GenerateSchedules(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Missions json.RawMessage `json:"missions"`
		Today    string          `json:"today"`
	}
	if err := decodeBody(w, r, &req); err != nil || !hasValue(req.Missions) {
		webapi.Error(w, http.StatusBadRequest, "Missions are required")
		return
	}

	today := req.Today
	if today == "" {
		today = time.Now().Format("2006-01-02")
	}

	body, err := h.backend.GenerateSchedules(r.Context(), req.Missions, today)
	relay(w, r, body, err, "Failed to generate schedules")
}

// RegenerateStatus re-evaluates the user's status, optionally seeded with
// the previous status and a self-description.
func (h *Handler) RegenerateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goal            string          `json:"goal"`
		PreviousStatus  json.RawMessage `json:"previous_status"`
		UserDescription json.RawMessage `json:"user_description"`
	}
	if err := decodeBody(w, r, &req); err != nil || req.Goal == "" {
		webapi.Error(w, http.StatusBadRequest, "Goal is required")
		return
	}

	body, err := h.backend.GenerateStatus(r.Context(), req.Goal, req.PreviousStatus, req.UserDescription)
	relay(w, r, body, err, "Failed to generate status")
}
