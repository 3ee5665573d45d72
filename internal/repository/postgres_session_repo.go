package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/platechase/internal/model"
)

// PostgresSessionRepo はPostgreSQLを使用したセッションリポジトリ。
type PostgresSessionRepo struct {
	db *sql.DB
}

// NewPostgresSessionRepo はPostgresSessionRepoを生成する。
func NewPostgresSessionRepo(db *sql.DB) *PostgresSessionRepo {
	return &PostgresSessionRepo{db: db}
}

// Create はセッションを作成する。
func (r *PostgresSessionRepo) Create(ctx context.Context, session *model.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, email, created_at)
		 VALUES ($1, $2, $3)`,
		session.Token, session.Email, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByToken は指定トークンのセッションを取得する。見つからない場合はnilを返す。
// 有効期限の条件は付けない。格納されたトークンは削除されるまで有効。
func (r *PostgresSessionRepo) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	session := &model.Session{}
	err := r.db.QueryRowContext(ctx,
		`SELECT token, email, created_at FROM sessions WHERE token = $1`,
		token,
	).Scan(&session.Token, &session.Email, &session.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return session, nil
}

// compile-time interface check
var _ SessionRepository = (*PostgresSessionRepo)(nil)
