package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/platechase/internal/model"
)

// AdminServiceInterface は管理ハンドラーが必要とするサービスインターフェース。
type AdminServiceInterface interface {
	Ban(ctx context.Context, email string) (*model.User, error)
	Unban(ctx context.Context, email string) (*model.User, error)
}

// DebugGameServiceInterface はデバッグ用のゲームレコード操作インターフェース。
type DebugGameServiceInterface interface {
	CurrentRecord(ctx context.Context) (*model.GameRecord, error)
	OverwriteRecord(ctx context.Context, entries map[string]model.PlayerState) (*model.GameRecord, error)
}

// AdminHandler は管理操作のHTTPハンドラー。管理者ミドルウェアの後段に配置する。
type AdminHandler struct {
	service     AdminServiceInterface
	debugGame   DebugGameServiceInterface
	envSnapshot func() map[string]string
}

// NewAdminHandler はAdminHandlerを生成する。
func NewAdminHandler(service AdminServiceInterface, debugGame DebugGameServiceInterface, envSnapshot func() map[string]string) *AdminHandler {
	return &AdminHandler{
		service:     service,
		debugGame:   debugGame,
		envSnapshot: envSnapshot,
	}
}

// banRequest はBAN/BAN解除のリクエストボディ。
type banRequest struct {
	Email string `json:"email"`
}

// banResponse はBAN/BAN解除のレスポンス。
type banResponse struct {
	Email    string `json:"email"`
	Banned   bool   `json:"banned"`
	BannedAt string `json:"bannedAt,omitempty"`
}

// BanUser はユーザーをBANする。
// PUT /users/ban
func (h *AdminHandler) BanUser(w http.ResponseWriter, r *http.Request) {
	email, ok := decodeBanRequest(w, r)
	if !ok {
		return
	}

	user, err := h.service.Ban(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	slog.Info("user banned", slog.String("email", user.Email))
	writeBanResponse(w, user)
}

// UnbanUser はユーザーのBANを解除する。
// PUT /users/unban
func (h *AdminHandler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	email, ok := decodeBanRequest(w, r)
	if !ok {
		return
	}

	user, err := h.service.Unban(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	slog.Info("user unbanned", slog.String("email", user.Email))
	writeBanResponse(w, user)
}

func decodeBanRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req banRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("failed to parse request body"))
		return "", false
	}
	if req.Email == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("email is required"))
		return "", false
	}
	return req.Email, true
}

func writeBanResponse(w http.ResponseWriter, user *model.User) {
	resp := banResponse{
		Email:  user.Email,
		Banned: user.IsBanned(),
	}
	if user.BannedAt != nil {
		resp.BannedAt = user.BannedAt.Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// DebugEnv は設定のスナップショットを返す。シークレットは伏せ字済み。
// GET /debug-env
func (h *AdminHandler) DebugEnv(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.envSnapshot())
}

// GetDebugGame は当月のゲームレコード全体を返す。
// GET /debug-game
func (h *AdminHandler) GetDebugGame(w http.ResponseWriter, r *http.Request) {
	record, err := h.debugGame.CurrentRecord(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// debugGameRequest はPOST /debug-gameのリクエストボディ。
type debugGameRequest struct {
	Entries map[string]model.PlayerState `json:"entries"`
}

// PostDebugGame は当月のゲームレコード全体を上書きする。
// POST /debug-game
func (h *AdminHandler) PostDebugGame(w http.ResponseWriter, r *http.Request) {
	var req debugGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("failed to parse request body"))
		return
	}

	record, err := h.debugGame.OverwriteRecord(r.Context(), req.Entries)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	slog.Warn("debug game record overwritten", slog.String("month_key", record.MonthKey))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}
