package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/platechase/internal/middleware"
	"github.com/hitoshi/platechase/internal/model"
)

// --- モック定義 ---

// mockAuthService はAuthServiceInterfaceのモック実装。
type mockAuthService struct {
	loginURLFn        func(state string) string
	handleCallbackFn  func(ctx context.Context, code string) (*model.Session, *model.User, error)
	validateSessionFn func(ctx context.Context, token string) (*model.User, error)
}

func (m *mockAuthService) LoginURL(state string) string {
	if m.loginURLFn != nil {
		return m.loginURLFn(state)
	}
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (m *mockAuthService) HandleCallback(ctx context.Context, code string) (*model.Session, *model.User, error) {
	if m.handleCallbackFn != nil {
		return m.handleCallbackFn(ctx, code)
	}
	return nil, nil, nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	if m.validateSessionFn != nil {
		return m.validateSessionFn(ctx, token)
	}
	return nil, nil
}

var _ AuthServiceInterface = (*mockAuthService)(nil)

func testAuthConfig() AuthHandlerConfig {
	return AuthHandlerConfig{
		FrontendURL:   "https://app.example.com",
		CookieSecure:  true,
		SessionMaxAge: 10 * 365 * 24 * 60 * 60,
	}
}

// --- テスト ---

func TestNewSession_NoCode_RedirectsToGoogle(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testAuthConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions/new", nil)
	w := httptest.NewRecorder()

	h.NewSession(w, req)

	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTemporaryRedirect)
	}

	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, "https://accounts.google.com/") {
		t.Errorf("Location = %q, want Google auth URL", location)
	}

	// stateクッキーが設定されること
	var stateCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "oauth_state" {
			stateCookie = c
		}
	}
	if stateCookie == nil || stateCookie.Value == "" {
		t.Fatal("expected oauth_state cookie to be set")
	}
	if !strings.Contains(location, stateCookie.Value) {
		t.Error("redirect URL should carry the state from the cookie")
	}
}

func TestNewSession_Callback_SetsSessionCookieAndRedirects(t *testing.T) {
	svc := &mockAuthService{
		handleCallbackFn: func(ctx context.Context, code string) (*model.Session, *model.User, error) {
			if code != "auth-code" {
				t.Errorf("code = %q, want auth-code", code)
			}
			return &model.Session{Token: "session-token-abc", Email: "player@example.com"},
				&model.User{Email: "player@example.com"}, nil
		},
	}
	h := NewAuthHandler(svc, testAuthConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions/new?code=auth-code&state=state-xyz", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-xyz"})
	w := httptest.NewRecorder()

	h.NewSession(w, req)

	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusTemporaryRedirect, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != "https://app.example.com" {
		t.Errorf("Location = %q, want frontend URL", got)
	}

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if sessionCookie.Value != "session-token-abc" {
		t.Errorf("session cookie value = %q, want session-token-abc", sessionCookie.Value)
	}
	// SPAがトークンを読めるようHttpOnlyではない
	if sessionCookie.HttpOnly {
		t.Error("session cookie must not be HttpOnly")
	}
	if sessionCookie.MaxAge != 10*365*24*60*60 {
		t.Errorf("session cookie MaxAge = %d, want 10 years", sessionCookie.MaxAge)
	}
}

func TestNewSession_Callback_StateMismatch(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testAuthConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions/new?code=auth-code&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "original"})
	w := httptest.NewRecorder()

	h.NewSession(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestValidateSession_ValidToken(t *testing.T) {
	svc := &mockAuthService{
		validateSessionFn: func(ctx context.Context, token string) (*model.User, error) {
			if token != "valid-token" {
				t.Errorf("token = %q, want valid-token", token)
			}
			return &model.User{
				Email:        "player@example.com",
				Name:         "Player",
				OAuthPayload: json.RawMessage(`{"sub":"123"}`),
			}, nil
		},
	}
	h := NewAuthHandler(svc, testAuthConfig(), nil)

	req := httptest.NewRequest(http.MethodPost, "/validate-session", strings.NewReader("valid-token"))
	w := httptest.NewRecorder()

	h.ValidateSession(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Valid bool            `json:"valid"`
		User  json.RawMessage `json:"user"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Valid {
		t.Error("expected valid = true")
	}
	if !strings.Contains(string(resp.User), "player@example.com") {
		t.Errorf("user = %s, want it to contain the email", resp.User)
	}
	// OAuthペイロードは外に出さない
	if strings.Contains(string(resp.User), `"sub"`) {
		t.Error("OAuth payload must not be included in the response")
	}
}

func TestValidateSession_UnknownTokenReturns200Invalid(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testAuthConfig(), nil)

	req := httptest.NewRequest(http.MethodPost, "/validate-session", strings.NewReader("unknown-token"))
	w := httptest.NewRecorder()

	h.ValidateSession(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Valid bool            `json:"valid"`
		User  json.RawMessage `json:"user"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Valid {
		t.Error("expected valid = false")
	}
	if string(resp.User) != "null" {
		t.Errorf("user = %s, want null", resp.User)
	}
}
