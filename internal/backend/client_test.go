package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPostSuccessReturnsBodyVerbatim(t *testing.T) {
	const want = `{"goal":"Learn piano in 6 months"}`

	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(want))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	body, err := c.GenerateGoal(context.Background(), "learn piano")
	if err != nil {
		t.Fatalf("GenerateGoal() error = %v", err)
	}
	if string(body) != want {
		t.Errorf("GenerateGoal() body = %s, want %s", body, want)
	}
	if gotPath != "/api/generate-goal" {
		t.Errorf("backend path = %s, want /api/generate-goal", gotPath)
	}
	if gotBody["goal"] != "learn piano" {
		t.Errorf("forwarded goal = %v, want learn piano", gotBody["goal"])
	}
}

func TestPostNon2xxReturnsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail":"model overloaded"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GenerateGoal(context.Background(), "learn piano")

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error = %v, want *UpstreamError", err)
	}
	if upstream.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want %d", upstream.StatusCode, http.StatusBadGateway)
	}
	if upstream.Endpoint != "/api/generate-goal" {
		t.Errorf("Endpoint = %s, want /api/generate-goal", upstream.Endpoint)
	}
	if string(upstream.Body) != `{"detail":"model overloaded"}` {
		t.Errorf("Body = %s", upstream.Body)
	}
}

func TestPostNetworkErrorIsNotUpstreamError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	_, err := c.GenerateGoal(context.Background(), "learn piano")
	if err == nil {
		t.Fatal("expected error for unreachable backend")
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		t.Errorf("network failure should not be an UpstreamError: %v", err)
	}
}

func TestToggleEventPayloadShape(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.ToggleEvent(context.Background(), json.RawMessage(`"evt-1"`), true, "alice"); err != nil {
		t.Fatalf("ToggleEvent() error = %v", err)
	}

	if got["event_id"] != "evt-1" {
		t.Errorf("event_id = %v, want evt-1", got["event_id"])
	}
	if got["is_done"] != true {
		t.Errorf("is_done = %v, want true", got["is_done"])
	}
	if got["user_id"] != "alice" {
		t.Errorf("user_id = %v, want alice", got["user_id"])
	}
}

func TestCreateUserPayloadShape(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/create-user" {
			t.Errorf("path = %s, want /create-user", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"message":"User created successfully"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.CreateUser(context.Background(), "alice", "tok-123", "alice@example.edu"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	want := map[string]any{"user_id": "alice", "token": "tok-123", "email": "alice@example.edu"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}

func TestExtractEvents(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "events with data",
			body: `{"user_id":"alice","events":{"data":[{"id":1,"summary":"Practice"}]}}`,
			want: `[{"id":1,"summary":"Practice"}]`,
		},
		{
			name: "empty events wrapper",
			body: `{"events":{}}`,
			want: `[]`,
		},
		{
			name: "missing events key",
			body: `{"user_id":"alice"}`,
			want: `[]`,
		},
		{
			name: "malformed body",
			body: `not json`,
			want: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEvents(json.RawMessage(tt.body))
			if string(got) != tt.want {
				t.Errorf("ExtractEvents() = %s, want %s", got, tt.want)
			}
		})
	}
}
