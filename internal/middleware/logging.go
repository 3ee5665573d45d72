package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/platechase/internal/metrics"
)

// statusRecorder はレスポンスのステータスコードを捕捉するResponseWriter。
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// NewLoggingMiddleware はリクエストごとのアクセスログとメトリクスを記録するミドルウェアを返す。
// collectorはnil可(メトリクス無効)。
func NewLoggingMiddleware(logger *slog.Logger, collector *metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			duration := time.Since(start)

			logger.Info("request",
				slog.String("request_id", RequestIDFromContext(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", duration),
			)

			if collector != nil {
				collector.RecordHTTPStatus(rec.status)
				collector.RecordHTTPDuration(r.Method, duration)
			}
		})
	}
}
