// Package admin はユーザーのBAN・BAN解除などの管理操作を提供する。
package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hitoshi/platechase/internal/model"
	"github.com/hitoshi/platechase/internal/repository"
)

// Service は管理サービス。
type Service struct {
	users repository.UserRepository
	now   func() time.Time
}

// NewService はServiceを生成する。
func NewService(users repository.UserRepository) *Service {
	return &Service{
		users: users,
		now:   time.Now,
	}
}

// Ban はユーザーをBANする。既にBAN済みの場合は何もしない(冪等)。
// ユーザーが存在しない場合はUSER_NOT_FOUNDを返す。
func (s *Service) Ban(ctx context.Context, email string) (*model.User, error) {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.IsBanned() {
		return user, nil
	}

	now := s.now()
	user.BannedAt = &now
	user.UpdatedAt = now

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

// Unban はユーザーのBANを解除する。BANされていない場合は何もしない(冪等)。
// ユーザーが存在しない場合はUSER_NOT_FOUNDを返す。
func (s *Service) Unban(ctx context.Context, email string) (*model.User, error) {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if !user.IsBanned() {
		return user, nil
	}

	user.BannedAt = nil
	user.UpdatedAt = s.now()

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

func (s *Service) findUser(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, model.NewInvalidRequestError("email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(email)
	}
	return user, nil
}
