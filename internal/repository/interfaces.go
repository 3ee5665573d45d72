// Package repository はデータ永続化のインターフェースを定義する。
//
// ストレージプラットフォームはキー単位のget/putのみを提供するため、
// すべてのインターフェースはオブジェクト全体の読み書き（read-whole / write-whole）を前提とする。
// キーをまたぐトランザクションは存在せず、同一キーへの書き込みはlast write winsとなる。
package repository

import (
	"context"

	"github.com/hitoshi/platechase/internal/model"
)

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error

	// FindByToken は指定トークンのセッションを取得する。見つからない場合はnilを返す。
	// サーバー側での有効期限チェックは行わない。格納されたトークンは削除されるまで有効。
	FindByToken(ctx context.Context, token string) (*model.Session, error)
}

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Upsert はユーザーレコード全体を作成または上書きする。
	Upsert(ctx context.Context, user *model.User) error
}

// GameRepository は月単位のゲームレコードの永続化インターフェース。
type GameRepository interface {
	// Find は指定月キーのレコードを取得する。見つからない場合はnilを返す。
	Find(ctx context.Context, monthKey string) (*model.GameRecord, error)

	// Put はレコード全体を上書き保存する。楽観的排他制御は行わない（last write wins）。
	Put(ctx context.Context, record *model.GameRecord) error

	// ListMonthKeys は存在する月キーの一覧をソート済みで返す。レポート集計用。
	ListMonthKeys(ctx context.Context) ([]string, error)
}
