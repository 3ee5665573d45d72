package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader はリクエストIDを伝搬するHTTPヘッダー名。
const RequestIDHeader = "X-Request-ID"

// requestIDContextKey はリクエストコンテキストにリクエストIDを格納するためのキー。
var requestIDContextKey = contextKey("request_id")

// NewRequestIDMiddleware はリクエストごとに一意のIDを割り当てるミドルウェアを返す。
// クライアントがX-Request-IDヘッダーで指定した値があればそれを使う。
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, requestID)

			ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext はリクエストコンテキストからリクエストIDを取得する。
// 見つからない場合は空文字を返す。
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}
