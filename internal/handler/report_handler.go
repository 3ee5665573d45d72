package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hitoshi/platechase/internal/middleware"
	"github.com/hitoshi/platechase/internal/model"
	"github.com/hitoshi/platechase/internal/report"
)

// ReportServiceInterface はレポートハンドラーが必要とするサービスインターフェース。
type ReportServiceInterface interface {
	List(ctx context.Context, limit, offset int, anonymize bool) ([]report.Row, int, error)
}

// ReportHandler はレポートのHTTPハンドラー。
type ReportHandler struct {
	service ReportServiceInterface
	isAdmin func(email string) bool
}

// NewReportHandler はReportHandlerを生成する。
func NewReportHandler(service ReportServiceInterface, isAdmin func(email string) bool) *ReportHandler {
	return &ReportHandler{
		service: service,
		isAdmin: isAdmin,
	}
}

// reportResponse はGET /reportsのレスポンス。
type reportResponse struct {
	Rows   []report.Row `json:"rows"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// ListReports は全月・全プレイヤーのレポートをページングして返す。
// 管理者以外にはメールアドレスを伏せ字化して返す。
// GET /reports?limit=100&offset=0
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	limit, offset, apiErr := parsePagination(r)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	anonymize := !h.isAdmin(user.Email)

	rows, total, err := h.service.List(r.Context(), limit, offset, anonymize)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if rows == nil {
		rows = []report.Row{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reportResponse{
		Rows:   rows,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// parsePagination はlimit/offsetクエリパラメータを検証して返す。
// 数値でない値や負数はINVALID_PAGINATION、limitの上限超過はLIMIT_TOO_LARGE。
func parsePagination(r *http.Request) (limit, offset int, apiErr *model.APIError) {
	limit = report.DefaultLimit
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0, 0, model.NewInvalidPaginationError()
		}
		if n > report.MaxLimit {
			return 0, 0, model.NewLimitTooLargeError(report.MaxLimit)
		}
		limit = n
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0, 0, model.NewInvalidPaginationError()
		}
		offset = n
	}

	return limit, offset, nil
}
