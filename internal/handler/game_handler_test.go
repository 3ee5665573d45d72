package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/platechase/internal/middleware"
	"github.com/hitoshi/platechase/internal/model"
)

// --- モック定義 ---

// mockGameService はGameServiceInterfaceのモック実装。
type mockGameService struct {
	fetchFn  func(ctx context.Context, email string) (*model.PlayerState, error)
	updateFn func(ctx context.Context, email string, visited []string) (*model.PlayerState, error)
}

func (m *mockGameService) Fetch(ctx context.Context, email string) (*model.PlayerState, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, email)
	}
	return nil, nil
}

func (m *mockGameService) Update(ctx context.Context, email string, visited []string) (*model.PlayerState, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, email, visited)
	}
	return nil, nil
}

var _ GameServiceInterface = (*mockGameService)(nil)

// --- テストヘルパー ---

// withUser はテスト用にリクエストコンテキストに認証済みユーザーを注入するヘルパー。
func withUser(r *http.Request, email string) *http.Request {
	ctx := middleware.ContextWithUser(r.Context(), &model.User{Email: email})
	return r.WithContext(ctx)
}

// parseAPIErrorResponse はレスポンスボディからAPIErrorレスポンスをパースするヘルパー。
func parseAPIErrorResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return result
}

// --- テスト ---

func TestGetGame_ReturnsPlayerState(t *testing.T) {
	svc := &mockGameService{
		fetchFn: func(ctx context.Context, email string) (*model.PlayerState, error) {
			if email != "player@example.com" {
				t.Errorf("email = %q, want player@example.com", email)
			}
			return &model.PlayerState{VisitedStates: []string{"CA", "NY"}}, nil
		},
	}
	h := NewGameHandler(svc, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/game", nil), "player@example.com")
	w := httptest.NewRecorder()

	h.GetGame(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var state model.PlayerState
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(state.VisitedStates) != 2 {
		t.Errorf("VisitedStates = %v, want 2 entries", state.VisitedStates)
	}
}

func TestGetGame_BannedUserStillSucceeds(t *testing.T) {
	svc := &mockGameService{
		fetchFn: func(ctx context.Context, email string) (*model.PlayerState, error) {
			return &model.PlayerState{VisitedStates: []string{"CA"}}, nil
		},
	}
	h := NewGameHandler(svc, nil)

	// BAN済みユーザーでも閲覧は200で返す
	bannedAt := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	user := &model.User{Email: "banned@example.com", BannedAt: &bannedAt}
	req := httptest.NewRequest(http.MethodGet, "/game", nil)
	req = req.WithContext(middleware.ContextWithUser(req.Context(), user))
	w := httptest.NewRecorder()

	h.GetGame(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var state model.PlayerState
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(state.VisitedStates) != 1 {
		t.Errorf("VisitedStates = %v, want 1 entry", state.VisitedStates)
	}
}

func TestGetGame_Unauthenticated(t *testing.T) {
	h := NewGameHandler(&mockGameService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/game", nil)
	w := httptest.NewRecorder()

	h.GetGame(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestUpdateGame_Success(t *testing.T) {
	svc := &mockGameService{
		updateFn: func(ctx context.Context, email string, visited []string) (*model.PlayerState, error) {
			return &model.PlayerState{VisitedStates: visited}, nil
		},
	}
	h := NewGameHandler(svc, nil)

	body := bytes.NewBufferString(`{"visitedStates":["CA","NY","TX"]}`)
	req := withUser(httptest.NewRequest(http.MethodPut, "/game", body), "player@example.com")
	w := httptest.NewRecorder()

	h.UpdateGame(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var state model.PlayerState
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(state.VisitedStates) != 3 {
		t.Errorf("VisitedStates = %v, want 3 entries", state.VisitedStates)
	}
}

func TestUpdateGame_InvalidBody(t *testing.T) {
	h := NewGameHandler(&mockGameService{}, nil)

	body := bytes.NewBufferString(`not json`)
	req := withUser(httptest.NewRequest(http.MethodPut, "/game", body), "player@example.com")
	w := httptest.NewRecorder()

	h.UpdateGame(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	resp := parseAPIErrorResponse(t, w)
	if resp["code"] != model.ErrCodeInvalidRequest {
		t.Errorf("code = %q, want %q", resp["code"], model.ErrCodeInvalidRequest)
	}
}

func TestUpdateGame_MissingVisitedStates(t *testing.T) {
	h := NewGameHandler(&mockGameService{}, nil)

	body := bytes.NewBufferString(`{}`)
	req := withUser(httptest.NewRequest(http.MethodPut, "/game", body), "player@example.com")
	w := httptest.NewRecorder()

	h.UpdateGame(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateGame_BannedUserGets403(t *testing.T) {
	svc := &mockGameService{
		updateFn: func(ctx context.Context, email string, visited []string) (*model.PlayerState, error) {
			return nil, model.NewAccountBannedError()
		},
	}
	h := NewGameHandler(svc, nil)

	body := bytes.NewBufferString(`{"visitedStates":["CA"]}`)
	req := withUser(httptest.NewRequest(http.MethodPut, "/game", body), "banned@example.com")
	w := httptest.NewRecorder()

	h.UpdateGame(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	resp := parseAPIErrorResponse(t, w)
	if resp["message"] != "Account banned" {
		t.Errorf("message = %q, want %q", resp["message"], "Account banned")
	}
}

func TestUpdateGame_InvalidRegionCodeGets400(t *testing.T) {
	svc := &mockGameService{
		updateFn: func(ctx context.Context, email string, visited []string) (*model.PlayerState, error) {
			return nil, model.NewInvalidRegionCodeError("XX")
		},
	}
	h := NewGameHandler(svc, nil)

	body := bytes.NewBufferString(`{"visitedStates":["XX"]}`)
	req := withUser(httptest.NewRequest(http.MethodPut, "/game", body), "player@example.com")
	w := httptest.NewRecorder()

	h.UpdateGame(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateGame_InternalErrorIsGeneric(t *testing.T) {
	svc := &mockGameService{
		updateFn: func(ctx context.Context, email string, visited []string) (*model.PlayerState, error) {
			return nil, errors.New("redis: connection refused")
		},
	}
	h := NewGameHandler(svc, nil)

	body := bytes.NewBufferString(`{"visitedStates":["CA"]}`)
	req := withUser(httptest.NewRequest(http.MethodPut, "/game", body), "player@example.com")
	w := httptest.NewRecorder()

	h.UpdateGame(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	// 内部エラーの詳細はレスポンスに漏らさない
	resp := parseAPIErrorResponse(t, w)
	if resp["code"] != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", resp["code"])
	}
	if resp["message"] == "redis: connection refused" {
		t.Error("internal error details must not leak to the client")
	}
}
