package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goalreacher/goalreacher/internal/metrics"
)

// UpstreamError reports a non-2xx response from the backend. The body is
// retained so handlers can forward backend diagnostics where their route
// contract calls for it.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("backend %s returned status %d", e.Endpoint, e.StatusCode)
}

// Client is a thin typed client for the planning backend. All persistence
// and plan generation happens there; this side only forwards JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type createUserRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
	Email  string `json:"email"`
}

type generateGoalRequest struct {
	Goal string `json:"goal"`
}

type generateMilestonesRequest struct {
	Goal   string          `json:"goal"`
	Status json.RawMessage `json:"status"`
}

type generateMissionsRequest struct {
	Goal       string          `json:"goal"`
	Status     json.RawMessage `json:"status"`
	Milestones json.RawMessage `json:"milestones"`
}

type generateSchedulesRequest struct {
	Missions json.RawMessage `json:"missions"`
	Today    string          `json:"today"`
}

type generateStatusRequest struct {
	Goal            string          `json:"goal"`
	PreviousStatus  json.RawMessage `json:"previous_status,omitempty"`
	UserDescription json.RawMessage `json:"user_description,omitempty"`
}

type toggleEventRequest struct {
	EventID json.RawMessage `json:"event_id"`
	IsDone  bool            `json:"is_done"`
	UserID  string          `json:"user_id"`
}

type userRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// CreateUser registers (or looks up) a user with the backend after login.
func (c *Client) CreateUser(ctx context.Context, userID, token, email string) (json.RawMessage, error) {
	return c.post(ctx, "/create-user", createUserRequest{UserID: userID, Token: token, Email: email})
}

func (c *Client) GenerateGoal(ctx context.Context, goal string) (json.RawMessage, error) {
	return c.post(ctx, "/api/generate-goal", generateGoalRequest{Goal: goal})
}

func (c *Client) GenerateMilestones(ctx context.Context, goal string, status json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, "/api/generate-milestones", generateMilestonesRequest{Goal: goal, Status: status})
}

func (c *Client) GenerateMissions(ctx context.Context, goal string, status, milestones json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, "/api/generate-missions", generateMissionsRequest{Goal: goal, Status: status, Milestones: milestones})
}

// GenerateSchedules forwards missions along with the reference date used as
// the planning anchor, formatted YYYY-MM-DD.
func (c *Client) GenerateSchedules(ctx context.Context, missions json.RawMessage, today string) (json.RawMessage, error) {
	return c.post(ctx, "/api/generate-schedules", generateSchedulesRequest{Missions: missions, Today: today})
}

func (c *Client) GenerateStatus(ctx context.Context, goal string, previousStatus, userDescription json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, "/api/generate-status", generateStatusRequest{Goal: goal, PreviousStatus: previousStatus, UserDescription: userDescription})
}

// SaveData forwards an arbitrary progress snapshot. The caller is expected
// to have injected the session-resolved userid field already.
func (c *Client) SaveData(ctx context.Context, data map[string]json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, "/api/save-data", data)
}

// ToggleEvent sets an event's completion flag to the requested value. The
// flag is absolute rather than a flip, so repeated identical calls converge.
func (c *Client) ToggleEvent(ctx context.Context, eventID json.RawMessage, isDone bool, userID string) (json.RawMessage, error) {
	return c.post(ctx, "/api/events/toggle", toggleEventRequest{EventID: eventID, IsDone: isDone, UserID: userID})
}

func (c *Client) GetStatus(ctx context.Context, userID, email string) (json.RawMessage, error) {
	return c.post(ctx, "/api/back-get-status", userRequest{UserID: userID, Email: email})
}

// LoadData fetches the user's saved state. The backend wraps events as
// {events: {data: [...]}}; callers that only need events should use
// ExtractEvents on the result.
func (c *Client) LoadData(ctx context.Context, userID, email string) (json.RawMessage, error) {
	return c.post(ctx, "/api/load-data", userRequest{UserID: userID, Email: email})
}

// ExtractEvents pulls the events array out of a load-data response body.
// A missing or empty wrapper yields an empty array, never null.
func ExtractEvents(body json.RawMessage) json.RawMessage {
	var wrapper struct {
		Events struct {
			Data json.RawMessage `json:"data"`
		} `json:"events"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil || len(wrapper.Events.Data) == 0 {
		return json.RawMessage("[]")
	}
	return wrapper.Events.Data
}

func (c *Client) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ObserveUpstreamLatency(ctx, "backend"+path, start)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("backend %s: read response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Endpoint: path, StatusCode: resp.StatusCode, Body: respBody}
	}

	return json.RawMessage(respBody), nil
}
