// Package app はアプリケーションの起動と依存関係のワイヤリングを担う。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/hitoshi/platechase/internal/admin"
	"github.com/hitoshi/platechase/internal/auth"
	"github.com/hitoshi/platechase/internal/config"
	"github.com/hitoshi/platechase/internal/database"
	"github.com/hitoshi/platechase/internal/game"
	"github.com/hitoshi/platechase/internal/handler"
	"github.com/hitoshi/platechase/internal/logger"
	"github.com/hitoshi/platechase/internal/metrics"
	"github.com/hitoshi/platechase/internal/middleware"
	"github.com/hitoshi/platechase/internal/notify"
	"github.com/hitoshi/platechase/internal/report"
	"github.com/hitoshi/platechase/internal/repository"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. 設定読み込み前にデフォルトレベルでログを使えるようにする
	logger.SetupDefault(w, slog.LevelInfo)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. 設定されたログレベルで再セットアップ
	logger.SetupDefault(w, logger.ParseLevel(cfg.LogLevel))

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("store_backend", cfg.StoreBackend),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// stores はバックエンドに依存しないリポジトリの束。
type stores struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
	games    repository.GameRepository
	close    func() error
}

// openStores はSTORE_BACKENDに応じてストレージバックエンドを初期化する。
func openStores(cfg *config.Config) (*stores, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		slog.Info("redis connection established", slog.String("addr", cfg.RedisAddr))

		return &stores{
			sessions: repository.NewRedisSessionRepo(client),
			users:    repository.NewRedisUserRepo(client),
			games:    repository.NewRedisGameRepo(client),
			close:    client.Close,
		}, nil

	case config.StoreBackendPostgres:
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		slog.Info("database connection established")

		return &stores{
			sessions: repository.NewPostgresSessionRepo(db),
			users:    repository.NewPostgresUserRepo(db),
			games:    repository.NewPostgresGameRepo(db),
			close:    db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %q", cfg.StoreBackend)
	}
}

// newMailer はSESメーラーを初期化する。通知設定が無ければnilを返す（通知無効）。
func newMailer(cfg *config.Config) (notify.Mailer, error) {
	if cfg.MailFrom == "" || cfg.NotifyEmail == "" {
		slog.Info("mail notification disabled: MAIL_FROM or NOTIFY_EMAIL not set")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return notify.NewSESMailer(ses.NewFromConfig(awsCfg), cfg.MailFrom), nil
}

// runServe はAPIサーバーモードで起動する。
// ストレージバックエンドを開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. ストレージバックエンド
	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	// 2. メトリクス
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 3. メーラーと通知ディスパッチャー
	mailer, err := newMailer(cfg)
	if err != nil {
		return err
	}
	dispatcher := notify.NewDispatcher(mailer, cfg.NotifyEmail, slog.Default(), collector)

	// 4. ドメインサービス
	oauthProvider := auth.NewGoogleOAuthProvider(auth.GoogleOAuthConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	})
	authService := auth.NewService(oauthProvider, st.users, st.sessions, cfg.AdminEmails)

	gameService := game.NewService(st.games, st.users, dispatcher)
	adminService := admin.NewService(st.users)
	reportService := report.NewService(st.games)

	// 5. レート制限
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 6. ルーターの構築
	deps := &handler.RouterDeps{
		SessionValidator:   authService,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        rateLimiter,
		Logger:             slog.Default(),
		Collector:          collector,

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			FrontendURL:   cfg.FrontendURL,
			CookieDomain:  cfg.CookieDomain,
			CookieSecure:  cfg.CookieSecure,
			SessionMaxAge: cfg.SessionCookieMaxAge,
		},
		IsAdmin: authService.IsAdmin,

		GameService:      gameService,
		DebugGameService: gameService,

		AdminService: adminService,
		EnvSnapshot:  cfg.DebugSnapshot,

		ReportService: reportService,
	}

	router := handler.NewRouter(deps)

	// 7. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// STORE_BACKEND=postgresの場合のみ有効。Redisバックエンドにスキーマは無い。
func runMigrate(cfg *config.Config) error {
	if cfg.StoreBackend != config.StoreBackendPostgres {
		return fmt.Errorf("migrate is only supported with STORE_BACKEND=postgres (current: %q)", cfg.StoreBackend)
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
