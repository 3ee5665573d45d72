package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/platechase/internal/metrics"
	"github.com/hitoshi/platechase/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionValidator   middleware.SessionValidator
	CORSAllowedOrigins []string
	RateLimiter        *middleware.RateLimiter
	Logger             *slog.Logger
	Collector          *metrics.Collector

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig
	IsAdmin     func(email string) bool

	// ゲーム
	GameService      GameServiceInterface
	DebugGameService DebugGameServiceInterface

	// 管理
	AdminService AdminServiceInterface
	EnvSnapshot  func() map[string]string

	// レポート
	ReportService ReportServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Logging → Recovery → SecurityHeaders → CORS
//
// 認証が必要なルートにはさらにSession → RateLimit(General)が適用される。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Collector))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigins))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, deps.Collector)
	gameHandler := NewGameHandler(deps.GameService, deps.Collector)
	adminHandler := NewAdminHandler(deps.AdminService, deps.DebugGameService, deps.EnvSnapshot)
	reportHandler := NewReportHandler(deps.ReportService, deps.IsAdmin)

	// --- 認証不要のルート ---

	r.Get("/health", healthCheck)

	if deps.Collector != nil {
		r.Method(http.MethodGet, "/metrics", deps.Collector.Handler())
	}

	// OAuthフロー（リダイレクトとコールバックを兼ねる）
	r.Get("/sessions/new", authHandler.NewSession)
	r.Post("/sessions/new", authHandler.NewSession)

	// セッション検証
	r.Post("/validate-session", authHandler.ValidateSession)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionValidator))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// ゲーム状態
		r.Get("/game", gameHandler.GetGame)
		// PUT /game - ゲーム更新（更新専用レート制限を追加）
		r.With(deps.RateLimiter.GameUpdateMiddleware()).Put("/game", gameHandler.UpdateGame)

		// レポート（管理者以外は伏せ字化）
		r.Get("/reports", reportHandler.ListReports)

		// --- 管理者専用のルート ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewAdminMiddleware(deps.IsAdmin))

			r.Put("/users/ban", adminHandler.BanUser)
			r.Put("/users/unban", adminHandler.UnbanUser)

			r.Get("/debug-env", adminHandler.DebugEnv)
			r.Get("/debug-game", adminHandler.GetDebugGame)
			r.Post("/debug-game", adminHandler.PostDebugGame)
		})
	})

	return r
}

// healthCheck は死活監視用のエンドポイント。
// GET /health
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
