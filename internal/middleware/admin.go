package middleware

import (
	"log/slog"
	"net/http"

	"github.com/hitoshi/platechase/internal/model"
)

// NewAdminMiddleware は管理者権限を要求するミドルウェアを返す。
// セッションミドルウェアの後に配置すること。
// 管理者でないユーザーには403 Forbiddenを返す。
func NewAdminMiddleware(isAdmin func(email string) bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := UserFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			if !isAdmin(user.Email) {
				slog.Warn("admin access denied",
					slog.String("email", user.Email),
					slog.String("path", r.URL.Path),
				)
				WriteErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
