package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/truest-construction/site-backend/errs"
	"golang.org/x/oauth2"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestAdminPolicy(t *testing.T) {
	policy := NewAdminPolicy([]string{" Owner@Example.com ", "", "office@example.com"})

	tests := []struct {
		email string
		want  bool
	}{
		{"owner@example.com", true},
		{"OWNER@EXAMPLE.COM", true},
		{"office@example.com", true},
		{"stranger@example.com", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := policy.Allows(tt.email); got != tt.want {
			t.Errorf("Allows(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
	if policy.Len() != 2 {
		t.Errorf("Len() = %d, want 2", policy.Len())
	}

	var empty AdminPolicy
	if empty.Allows("owner@example.com") {
		t.Error("zero policy allowed an address")
	}
	if NewAdminPolicy(nil).Allows("owner@example.com") {
		t.Error("empty policy allowed an address")
	}
}

func newTestSessionManager(t *testing.T, now time.Time) *SessionManager {
	t.Helper()
	m, err := NewSessionManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	m.now = func() time.Time { return now }
	return m
}

func TestSessionRoundTrip(t *testing.T) {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	m := newTestSessionManager(t, now)

	token, expiresAt, err := m.Issue("Owner@Example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expiresAt = %v", expiresAt)
	}

	email, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if email != "owner@example.com" {
		t.Errorf("email = %q", email)
	}
}

func TestSessionRejections(t *testing.T) {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	m := newTestSessionManager(t, now)
	token, _, err := m.Issue("owner@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := m.Validate(""); !errs.IsUnauthorized(err) {
		t.Errorf("empty token error = %v", err)
	}

	later := newTestSessionManager(t, now.Add(2*time.Hour))
	if _, err := later.Validate(token); !errs.IsTokenExpiredError(err) {
		t.Errorf("expired token error = %v", err)
	}

	other, err := NewSessionManager(strings.Repeat("z", 32), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Validate(token); !errs.IsUnauthorized(err) || errs.IsTokenExpiredError(err) {
		t.Errorf("foreign signature error = %v", err)
	}

	state, err := m.IssueState("/admin/blog")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Validate(state); err == nil {
		t.Error("state token accepted as a session")
	}

	if _, err := NewSessionManager("short", time.Hour); err == nil {
		t.Error("short secret accepted")
	}
}

func TestStateRoundTrip(t *testing.T) {
	m := newTestSessionManager(t, time.Now())

	state, err := m.IssueState("/admin/content?tab=services")
	if err != nil {
		t.Fatalf("IssueState() error = %v", err)
	}
	callback, err := m.ValidateState(state)
	if err != nil {
		t.Fatalf("ValidateState() error = %v", err)
	}
	if callback != "/admin/content?tab=services" {
		t.Errorf("callback = %q", callback)
	}

	if _, err := m.ValidateState("garbage"); !errors.Is(err, errs.ErrInvalidState) {
		t.Errorf("ValidateState(garbage) error = %v", err)
	}
}

func TestSafeCallbackURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", DefaultCallbackURL},
		{"/admin/blog", "/admin/blog"},
		{"/admin?x=1", "/admin?x=1"},
		{"https://evil.example.com/admin", DefaultCallbackURL},
		{"//evil.example.com", DefaultCallbackURL},
		{"/\\evil.example.com", DefaultCallbackURL},
		{"admin", DefaultCallbackURL},
		{"javascript:alert(1)", DefaultCallbackURL},
	}
	for _, tt := range tests {
		if got := SafeCallbackURL(tt.raw); got != tt.want {
			t.Errorf("SafeCallbackURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func newFakeGoogle(t *testing.T, userInfo map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(userInfo)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestGoogleProvider(server *httptest.Server) *GoogleProvider {
	return NewGoogleProvider("client", "secret", "http://localhost/auth/callback",
		WithEndpoints(oauth2.Endpoint{
			AuthURL:   server.URL + "/auth",
			TokenURL:  server.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		}, server.URL+"/userinfo"))
}

func TestGoogleProviderEmail(t *testing.T) {
	server := newFakeGoogle(t, map[string]any{"email": "Owner@Example.com", "email_verified": true})
	provider := newTestGoogleProvider(server)

	email, err := provider.Email(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("Email() error = %v", err)
	}
	if email != "owner@example.com" {
		t.Errorf("email = %q", email)
	}

	if _, err := provider.Email(context.Background(), "bad-code"); err == nil {
		t.Error("Email() accepted a rejected code")
	}
	if _, err := provider.Email(context.Background(), ""); err == nil {
		t.Error("Email() accepted an empty code")
	}
}

func TestGoogleProviderRejectsUnverifiedEmail(t *testing.T) {
	server := newFakeGoogle(t, map[string]any{"email": "owner@example.com", "email_verified": false})
	provider := newTestGoogleProvider(server)

	if _, err := provider.Email(context.Background(), "good-code"); !errors.Is(err, errs.ErrUnverifiedEmail) {
		t.Errorf("Email() error = %v, want unverified", err)
	}
}

func TestGoogleProviderAuthCodeURL(t *testing.T) {
	provider := NewGoogleProvider("client", "secret", "http://localhost/auth/callback")
	parsed, err := url.Parse(provider.AuthCodeURL("state-token"))
	if err != nil {
		t.Fatal(err)
	}
	query := parsed.Query()
	if query.Get("state") != "state-token" || query.Get("client_id") != "client" {
		t.Errorf("AuthCodeURL query = %v", query)
	}
	if !strings.Contains(query.Get("scope"), "email") {
		t.Errorf("scope = %q", query.Get("scope"))
	}
}
