package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hitoshi/platechase/internal/model"
)

// PostgresGameRepo はPostgreSQLを使用したゲームレコードリポジトリ。
// 月キー1行にエントリのマッピング全体をJSONBで保持し、
// Redisバックエンドと同じread-whole/write-wholeの規律で読み書きする。
type PostgresGameRepo struct {
	db *sql.DB
}

// NewPostgresGameRepo はPostgresGameRepoを生成する。
func NewPostgresGameRepo(db *sql.DB) *PostgresGameRepo {
	return &PostgresGameRepo{db: db}
}

// Find は指定月キーのレコードを取得する。見つからない場合はnilを返す。
func (r *PostgresGameRepo) Find(ctx context.Context, monthKey string) (*model.GameRecord, error) {
	var entriesJSON []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT entries FROM games WHERE month_key = $1`,
		monthKey,
	).Scan(&entriesJSON)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find game record: %w", err)
	}

	record := model.NewGameRecord(monthKey)
	if err := json.Unmarshal(entriesJSON, &record.Entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game entries: %w", err)
	}
	if record.Entries == nil {
		record.Entries = make(map[string]model.PlayerState)
	}
	return record, nil
}

// Put はレコード全体を上書き保存する。
func (r *PostgresGameRepo) Put(ctx context.Context, record *model.GameRecord) error {
	entriesJSON, err := json.Marshal(record.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal game entries: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO games (month_key, entries)
		 VALUES ($1, $2)
		 ON CONFLICT (month_key) DO UPDATE SET entries = EXCLUDED.entries`,
		record.MonthKey, entriesJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to store game record: %w", err)
	}
	return nil
}

// ListMonthKeys は存在する月キーの一覧をソート済みで返す。
func (r *PostgresGameRepo) ListMonthKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT month_key FROM games ORDER BY month_key`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list month keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan month key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate month keys: %w", err)
	}
	return keys, nil
}

// compile-time interface check
var _ GameRepository = (*PostgresGameRepo)(nil)
