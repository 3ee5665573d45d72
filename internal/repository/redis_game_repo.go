package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/hitoshi/platechase/internal/model"
)

const (
	// gameKeyPrefix はゲームレコードキーの接頭辞。
	gameKeyPrefix = "game:"
	// gameMonthsKey はレポート集計用の月キー索引（Redisセット）。
	gameMonthsKey = "game:months"
)

// RedisGameRepo はRedisを使用したゲームレコードリポジトリ。
// 1月キー=1キーでレコード全体をJSONで読み書きする。
// レコード本体と月キー索引は別キーのため原子的には更新されないが、
// プラットフォームのキー間非トランザクションモデルに合わせて許容する。
type RedisGameRepo struct {
	client *redis.Client
}

// NewRedisGameRepo はRedisGameRepoを生成する。
func NewRedisGameRepo(client *redis.Client) *RedisGameRepo {
	return &RedisGameRepo{client: client}
}

// Find は指定月キーのレコードを取得する。見つからない場合はnilを返す。
func (r *RedisGameRepo) Find(ctx context.Context, monthKey string) (*model.GameRecord, error) {
	data, err := r.client.Get(ctx, gameKeyPrefix+monthKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game record: %w", err)
	}

	record := &model.GameRecord{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game record: %w", err)
	}
	if record.Entries == nil {
		record.Entries = make(map[string]model.PlayerState)
	}
	return record, nil
}

// Put はレコード全体を上書き保存し、月キーを索引に追加する。
func (r *RedisGameRepo) Put(ctx context.Context, record *model.GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %w", err)
	}
	if err := r.client.Set(ctx, gameKeyPrefix+record.MonthKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store game record: %w", err)
	}
	if err := r.client.SAdd(ctx, gameMonthsKey, record.MonthKey).Err(); err != nil {
		return fmt.Errorf("failed to index month key: %w", err)
	}
	return nil
}

// ListMonthKeys は存在する月キーの一覧をソート済みで返す。
func (r *RedisGameRepo) ListMonthKeys(ctx context.Context) ([]string, error) {
	keys, err := r.client.SMembers(ctx, gameMonthsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list month keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// compile-time interface check
var _ GameRepository = (*RedisGameRepo)(nil)
