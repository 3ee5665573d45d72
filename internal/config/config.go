package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ストアバックエンドの種別。
const (
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Store
	StoreBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string

	// OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Admin
	AdminEmails []string

	// Session Cookie
	SessionCookieMaxAge int
	CookieDomain        string
	CookieSecure        bool

	// Mail
	AWSRegion   string
	MailFrom    string
	NotifyEmail string

	// Rate Limit（req/min単位）
	RateLimitGeneral    int
	RateLimitGameUpdate int

	// Server
	ServerPort  string
	FrontendURL string
	Environment string

	// CORS
	CORSAllowedOrigins []string

	// Logging
	LogLevel string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
// カレントディレクトリに.envがあれば先に読み込む（無ければ黙って無視する）。
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	if cfg.GoogleClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}

	cfg.GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	if cfg.GoogleClientSecret == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}

	cfg.GoogleRedirectURL = os.Getenv("GOOGLE_REDIRECT_URL")
	if cfg.GoogleRedirectURL == "" {
		missing = append(missing, "GOOGLE_REDIRECT_URL")
	}

	cfg.FrontendURL = os.Getenv("FRONTEND_URL")
	if cfg.FrontendURL == "" {
		missing = append(missing, "FRONTEND_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Store backend
	cfg.StoreBackend = getEnvString("STORE_BACKEND", StoreBackendRedis)
	switch cfg.StoreBackend {
	case StoreBackendRedis, StoreBackendPostgres:
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND: %q (must be %q or %q)",
			cfg.StoreBackend, StoreBackendRedis, StoreBackendPostgres)
	}

	cfg.RedisAddr = getEnvString("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.StoreBackend == StoreBackendPostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
	}

	// Optional fields with defaults
	cfg.AdminEmails = getEnvStringList("ADMIN_EMAILS")
	// デフォルトは10年。サーバー側ではセッションを失効させない。
	cfg.SessionCookieMaxAge = getEnvInt("SESSION_COOKIE_MAX_AGE", 10*365*24*60*60)
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")
	// 既定はフロントエンドURLのスキームから導出し、COOKIE_SECUREで上書きできる。
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", strings.HasPrefix(cfg.FrontendURL, "https://"))
	cfg.AWSRegion = getEnvString("AWS_REGION", "us-east-1")
	cfg.MailFrom = os.Getenv("MAIL_FROM")
	cfg.NotifyEmail = os.Getenv("NOTIFY_EMAIL")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitGameUpdate = getEnvInt("RATE_LIMIT_GAME_UPDATE", 30)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.Environment = getEnvString("ENVIRONMENT", "development")
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")

	// 許可オリジンは環境で切り替える。明示指定があればそれを優先する。
	origins := getEnvStringList("CORS_ALLOWED_ORIGINS")
	if len(origins) == 0 {
		if cfg.Environment == "production" {
			origins = []string{cfg.FrontendURL}
		} else {
			origins = []string{cfg.FrontendURL, "http://localhost:3000"}
		}
	}
	cfg.CORSAllowedOrigins = origins

	return cfg, nil
}

// IsAdminEmail は指定メールアドレスが管理者リストに含まれるかどうかを返す。
func (c *Config) IsAdminEmail(email string) bool {
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

// DebugSnapshot はデバッグ表示用の設定スナップショットを返す。
// シークレットは伏せ字にする。
func (c *Config) DebugSnapshot() map[string]string {
	return map[string]string{
		"STORE_BACKEND":          c.StoreBackend,
		"REDIS_ADDR":             c.RedisAddr,
		"REDIS_PASSWORD":         redact(c.RedisPassword),
		"DATABASE_URL":           redact(c.DatabaseURL),
		"GOOGLE_CLIENT_ID":       c.GoogleClientID,
		"GOOGLE_CLIENT_SECRET":   redact(c.GoogleClientSecret),
		"GOOGLE_REDIRECT_URL":    c.GoogleRedirectURL,
		"ADMIN_EMAILS":           strings.Join(c.AdminEmails, ","),
		"SESSION_COOKIE_MAX_AGE": strconv.Itoa(c.SessionCookieMaxAge),
		"COOKIE_DOMAIN":          c.CookieDomain,
		"COOKIE_SECURE":          strconv.FormatBool(c.CookieSecure),
		"AWS_REGION":             c.AWSRegion,
		"MAIL_FROM":              c.MailFrom,
		"NOTIFY_EMAIL":           c.NotifyEmail,
		"SERVER_PORT":            c.ServerPort,
		"FRONTEND_URL":           c.FrontendURL,
		"ENVIRONMENT":            c.Environment,
		"CORS_ALLOWED_ORIGINS":   strings.Join(c.CORSAllowedOrigins, ","),
		"LOG_LEVEL":              c.LogLevel,
	}
}

func redact(v string) string {
	if v == "" {
		return ""
	}
	return "[REDACTED]"
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

// getEnvStringList はカンマ区切りの環境変数をトリムして分割する。
func getEnvStringList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
