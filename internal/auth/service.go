// Package auth はGoogle OAuthによるログインとセッション管理を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hitoshi/platechase/internal/model"
	"github.com/hitoshi/platechase/internal/repository"
)

// UserInfo はOAuthプロバイダーから取得したユーザー情報。
// RawPayloadはプロバイダーのレスポンスボディそのもの。
type UserInfo struct {
	Email      string
	Name       string
	RawPayload json.RawMessage
}

// OAuthProvider はOAuth認証プロバイダーのインターフェース。
type OAuthProvider interface {
	LoginURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*UserInfo, error)
}

// Service は認証サービス。ログイン、セッション検証、管理者判定を担う。
type Service struct {
	oauth    OAuthProvider
	users    repository.UserRepository
	sessions repository.SessionRepository
	admins   map[string]struct{}
}

// NewService はServiceを生成する。adminEmailsは管理者のメールアドレス一覧。
func NewService(oauth OAuthProvider, users repository.UserRepository, sessions repository.SessionRepository, adminEmails []string) *Service {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	return &Service{
		oauth:    oauth,
		users:    users,
		sessions: sessions,
		admins:   admins,
	}
}

// LoginURL はOAuthプロバイダーの認証URLを返す。
func (s *Service) LoginURL(state string) string {
	return s.oauth.LoginURL(state)
}

// HandleCallback はOAuthコールバックを処理する。
// 認可コードを交換してユーザーをupsertし、新しいセッションを発行する。
// 既存ユーザーのBAN状態と作成日時は保持される。
func (s *Service) HandleCallback(ctx context.Context, code string) (*model.Session, *model.User, error) {
	info, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("oauth exchange failed: %w", err)
	}

	email := strings.ToLower(info.Email)
	now := time.Now()

	user := &model.User{
		Email:        email,
		Name:         info.Name,
		OAuthPayload: info.RawPayload,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}
	if existing != nil {
		user.BannedAt = existing.BannedAt
		user.CreatedAt = existing.CreatedAt
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &model.Session{
		Token:     token,
		Email:     email,
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, user, nil
}

// ValidateSession はセッショントークンを検証し、対応するユーザーを返す。
// トークンが空または未知の場合はnilを返す(エラーにはしない)。
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	user, err := s.users.FindByEmail(ctx, session.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// IsAdmin はメールアドレスが管理者かどうかを判定する。大文字小文字は区別しない。
func (s *Service) IsAdmin(email string) bool {
	_, ok := s.admins[strings.ToLower(email)]
	return ok
}

// generateSessionToken は暗号学的に安全な32バイトの乱数をhexエンコードして返す。
func generateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
