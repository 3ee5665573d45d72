// Package game はプレイヤーの訪問状態の取得・更新を提供する。
// 状態は月ごとのキー(例: "January-2025")で保存され、月が替わると全員がリセットされる。
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/hitoshi/platechase/internal/model"
	"github.com/hitoshi/platechase/internal/region"
	"github.com/hitoshi/platechase/internal/repository"
)

// Notifier は訪問状態の変化を通知するインターフェース。
type Notifier interface {
	NotifyChanges(email string, added, removed []string)
}

// Service はゲームサービス。
type Service struct {
	games    repository.GameRepository
	users    repository.UserRepository
	notifier Notifier
	now      func() time.Time
}

// NewService はServiceを生成する。notifierはnil可(通知無効)。
func NewService(games repository.GameRepository, users repository.UserRepository, notifier Notifier) *Service {
	return &Service{
		games:    games,
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

// Fetch は現在の月のプレイヤー状態を返す。
// レコードやエントリが無ければ空の状態を返す。
func (s *Service) Fetch(ctx context.Context, email string) (*model.PlayerState, error) {
	monthKey := model.MonthKey(s.now())

	record, err := s.games.Find(ctx, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to find game record: %w", err)
	}
	if record == nil {
		state := model.EmptyPlayerState()
		return &state, nil
	}

	state := record.StateFor(email)
	return &state, nil
}

// Update は現在の月のプレイヤー状態を置き換える。
// BANされたユーザーは更新できない。地域コードは全件検証される。
// 変化があれば通知を発行する(ベストエフォート)。
func (s *Service) Update(ctx context.Context, email string, visited []string) (*model.PlayerState, error) {
	if len(visited) > region.Count() {
		return nil, model.NewTooManyRegionsError(region.Count())
	}
	for _, code := range visited {
		if !region.IsValid(code) {
			return nil, model.NewInvalidRegionCodeError(code)
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user != nil && user.IsBanned() {
		return nil, model.NewAccountBannedError()
	}

	now := s.now()
	monthKey := model.MonthKey(now)

	record, err := s.games.Find(ctx, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to find game record: %w", err)
	}
	if record == nil {
		record = model.NewGameRecord(monthKey)
	}

	previous := record.StateFor(email)

	next := model.PlayerState{
		VisitedStates: append([]string{}, visited...),
		UpdatedAt:     now,
	}
	record.Entries[email] = next

	if err := s.games.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to put game record: %w", err)
	}

	added, removed := DetectStateChanges(previous.VisitedStates, next.VisitedStates)
	if s.notifier != nil && (len(added) > 0 || len(removed) > 0) {
		s.notifier.NotifyChanges(email, added, removed)
	}

	return &next, nil
}

// CurrentRecord はデバッグ用に現在の月のレコード全体を返す。
// レコードが無ければ空のレコードを返す。
func (s *Service) CurrentRecord(ctx context.Context) (*model.GameRecord, error) {
	monthKey := model.MonthKey(s.now())

	record, err := s.games.Find(ctx, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to find game record: %w", err)
	}
	if record == nil {
		record = model.NewGameRecord(monthKey)
	}
	return record, nil
}

// OverwriteRecord はデバッグ用に現在の月のレコード全体を上書きする。
// 通知は発行しない。
func (s *Service) OverwriteRecord(ctx context.Context, entries map[string]model.PlayerState) (*model.GameRecord, error) {
	monthKey := model.MonthKey(s.now())

	record := model.NewGameRecord(monthKey)
	if entries != nil {
		record.Entries = entries
	}

	if err := s.games.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to put game record: %w", err)
	}
	return record, nil
}
