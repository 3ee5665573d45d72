// Package model はドメインモデルを定義する。
package model

import (
	"encoding/json"
	"time"
)

// User はPlate Chaseのユーザーを表す。メールアドレスを主キーとする。
// OAuthログイン成功時にupsertされ、BAN/BAN解除操作で変更される。
type User struct {
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	OAuthPayload json.RawMessage `json:"oauthPayload,omitempty"`
	BannedAt     *time.Time      `json:"bannedAt"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// IsBanned はユーザーがBAN状態かどうかを返す。
func (u *User) IsBanned() bool {
	return u.BannedAt != nil
}

// Session はユーザーのログインセッションを表す。
// OAuthコールバック成功時に作成され、以降は参照のみで変更されない。
// サーバー側での有効期限は設けない（Cookie側のMax-Ageのみ）。
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
