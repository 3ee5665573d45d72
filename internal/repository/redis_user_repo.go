package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hitoshi/platechase/internal/model"
)

// userKeyPrefix はユーザーキーの接頭辞。
const userKeyPrefix = "user:"

// RedisUserRepo はRedisを使用したユーザーリポジトリ。
// メールアドレスをキーとし、レコード全体をJSONで読み書きする。
type RedisUserRepo struct {
	client *redis.Client
}

// NewRedisUserRepo はRedisUserRepoを生成する。
func NewRedisUserRepo(client *redis.Client) *RedisUserRepo {
	return &RedisUserRepo{client: client}
}

// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
func (r *RedisUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	data, err := r.client.Get(ctx, userKeyPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	user := &model.User{}
	if err := json.Unmarshal(data, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return user, nil
}

// Upsert はユーザーレコード全体を作成または上書きする。
func (r *RedisUserRepo) Upsert(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := r.client.Set(ctx, userKeyPrefix+user.Email, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// compile-time interface check
var _ UserRepository = (*RedisUserRepo)(nil)
