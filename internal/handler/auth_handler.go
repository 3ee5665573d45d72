// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/platechase/internal/metrics"
	"github.com/hitoshi/platechase/internal/middleware"
	"github.com/hitoshi/platechase/internal/model"
)

const oauthStateCookie = "oauth_state"

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	LoginURL(state string) string
	HandleCallback(ctx context.Context, code string) (*model.Session, *model.User, error)
	ValidateSession(ctx context.Context, token string) (*model.User, error)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	FrontendURL   string
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）。デフォルトは10年。
}

// AuthHandler はOAuth認証関連のHTTPハンドラー。
type AuthHandler struct {
	service   AuthServiceInterface
	config    AuthHandlerConfig
	collector *metrics.Collector
}

// NewAuthHandler はAuthHandlerを生成する。collectorはnil可。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig, collector *metrics.Collector) *AuthHandler {
	return &AuthHandler{
		service:   service,
		config:    config,
		collector: collector,
	}
}

// NewSession はOAuthフローの開始とコールバックを1つのエンドポイントで処理する。
// codeクエリパラメータが無ければGoogleの認証画面にリダイレクトし、
// あればコールバックとしてセッションを発行する。
// GET/POST /sessions/new
func (h *AuthHandler) NewSession(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		h.startLogin(w, r)
		return
	}
	h.handleCallback(w, r, code)
}

// startLogin はstateを発行してGoogleの認証画面にリダイレクトする。
func (h *AuthHandler) startLogin(w http.ResponseWriter, r *http.Request) {
	state, err := generateState()
	if err != nil {
		slog.Error("failed to generate oauth state", slog.String("error", err.Error()))
		writeAPIErrorResponse(w, http.StatusInternalServerError, internalServerError())
		return
	}

	// stateをCookieに保存（CSRF対策）
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10分
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.service.LoginURL(state), http.StatusTemporaryRedirect)
}

// handleCallback はOAuthコールバックを処理し、セッションCookieを設定する。
func (h *AuthHandler) handleCallback(w http.ResponseWriter, r *http.Request, code string) {
	// 1. stateの検証（CSRF対策）
	state := r.URL.Query().Get("state")
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value != state {
		slog.Warn("oauth state mismatch",
			slog.String("query_state", state),
		)
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("invalid state parameter"))
		return
	}

	// stateクッキーを削除
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	// 2. 認証処理
	session, user, err := h.service.HandleCallback(r.Context(), code)
	if err != nil {
		slog.Error("oauth callback failed", slog.String("error", err.Error()))
		writeAPIErrorResponse(w, http.StatusInternalServerError, internalServerError())
		return
	}

	slog.Info("login succeeded", slog.String("email", user.Email))
	if h.collector != nil {
		h.collector.RecordLogin()
	}

	// 3. セッションCookieを設定。
	// SPAがトークンを読み取ってAuthorizationヘッダーに載せるため、HttpOnlyにはしない。
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.SessionMaxAge,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	// 4. フロントエンドにリダイレクト
	http.Redirect(w, r, h.config.FrontendURL, http.StatusTemporaryRedirect)
}

// validateSessionResponse はPOST /validate-sessionのレスポンス。
type validateSessionResponse struct {
	Valid bool        `json:"valid"`
	User  *model.User `json:"user"`
}

// ValidateSession はセッショントークンを検証し、対応するユーザーを返す。
// リクエストボディはトークンそのもの（プレーンテキスト）。
// 未知のトークンでも200で{valid: false, user: null}を返す。
// POST /validate-session
func (h *AuthHandler) ValidateSession(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1024))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("failed to read request body"))
		return
	}

	token := strings.TrimSpace(string(body))

	user, err := h.service.ValidateSession(r.Context(), token)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := validateSessionResponse{
		Valid: user != nil,
		User:  user,
	}
	// OAuthペイロードはレスポンスに含めない
	if resp.User != nil {
		sanitized := *resp.User
		sanitized.OAuthPayload = nil
		resp.User = &sanitized
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// generateState はCSRF対策用のランダムなstate値を生成する。
func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
