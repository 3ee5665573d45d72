package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/platechase/internal/metrics"
	"github.com/hitoshi/platechase/internal/middleware"
	"github.com/hitoshi/platechase/internal/model"
)

// GameServiceInterface はゲームハンドラーが必要とするサービスインターフェース。
type GameServiceInterface interface {
	Fetch(ctx context.Context, email string) (*model.PlayerState, error)
	Update(ctx context.Context, email string, visited []string) (*model.PlayerState, error)
}

// GameHandler はゲーム状態のHTTPハンドラー。
type GameHandler struct {
	service   GameServiceInterface
	collector *metrics.Collector
}

// NewGameHandler はGameHandlerを生成する。collectorはnil可。
func NewGameHandler(service GameServiceInterface, collector *metrics.Collector) *GameHandler {
	return &GameHandler{
		service:   service,
		collector: collector,
	}
}

// GetGame は認証済みユーザーの当月の進行状態を返す。
// GET /game
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	state, err := h.service.Fetch(r.Context(), user.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// updateGameRequest はPUT /gameのリクエストボディ。
type updateGameRequest struct {
	VisitedStates []string `json:"visitedStates"`
}

// UpdateGame は認証済みユーザーの当月の進行状態を置き換える。
// PUT /game
func (h *GameHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req updateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("failed to parse request body"))
		return
	}
	if req.VisitedStates == nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("visitedStates is required"))
		return
	}

	state, err := h.service.Update(r.Context(), user.Email, req.VisitedStates)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordGameUpdate()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// apiErrorResponse はAPIエラーレスポンスのJSON表現。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, internalServerError())
}

// internalServerError は詳細を伏せた汎用の500エラーを返す。
func internalServerError() *model.APIError {
	return &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "An internal error occurred",
		Category: "system",
		Action:   "Please try again later",
	}
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden, model.ErrCodeAccountBanned:
		return http.StatusForbidden
	case model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidRequest, model.ErrCodeInvalidRegionCode, model.ErrCodeTooManyRegions,
		model.ErrCodeInvalidPagination, model.ErrCodeLimitTooLarge:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
