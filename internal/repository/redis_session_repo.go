package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hitoshi/platechase/internal/model"
)

// sessionKeyPrefix はセッションキーの接頭辞。
const sessionKeyPrefix = "session:"

// RedisSessionRepo はRedisを使用したセッションリポジトリ。
// 1セッション=1キーでJSONオブジェクト全体を読み書きする。
type RedisSessionRepo struct {
	client *redis.Client
}

// NewRedisSessionRepo はRedisSessionRepoを生成する。
func NewRedisSessionRepo(client *redis.Client) *RedisSessionRepo {
	return &RedisSessionRepo{client: client}
}

// Create はセッションを作成する。
// サーバー側で失効させない仕様のため、TTLは設定しない。
func (r *RedisSessionRepo) Create(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.Token, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// FindByToken は指定トークンのセッションを取得する。見つからない場合はnilを返す。
func (r *RedisSessionRepo) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	session := &model.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, nil
}

// compile-time interface check
var _ SessionRepository = (*RedisSessionRepo)(nil)
