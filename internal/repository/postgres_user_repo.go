package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/platechase/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	var payload []byte
	var bannedAt sql.NullTime

	err := r.db.QueryRowContext(ctx,
		`SELECT email, name, oauth_payload, banned_at, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.Email, &user.Name, &payload, &bannedAt, &user.CreatedAt, &user.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	user.OAuthPayload = payload
	if bannedAt.Valid {
		t := bannedAt.Time
		user.BannedAt = &t
	}

	return user, nil
}

// Upsert はユーザーレコード全体を作成または上書きする。
func (r *PostgresUserRepo) Upsert(ctx context.Context, user *model.User) error {
	payload := []byte(user.OAuthPayload)
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	var bannedAt sql.NullTime
	if user.BannedAt != nil {
		bannedAt = sql.NullTime{Time: *user.BannedAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, name, oauth_payload, banned_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (email) DO UPDATE SET
		   name = EXCLUDED.name,
		   oauth_payload = EXCLUDED.oauth_payload,
		   banned_at = EXCLUDED.banned_at,
		   updated_at = EXCLUDED.updated_at`,
		user.Email, user.Name, payload, bannedAt, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
