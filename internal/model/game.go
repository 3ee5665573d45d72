package model

import (
	"fmt"
	"time"
)

// PlayerState は1ユーザーの当月の進行状態を表す。
type PlayerState struct {
	VisitedStates []string  `json:"visitedStates"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EmptyPlayerState は訪問済みリージョンを持たない初期状態を返す。
func EmptyPlayerState() PlayerState {
	return PlayerState{VisitedStates: []string{}}
}

// GameRecord は月単位のゲームレコードを表す。
// 月キー（例: "January-2025"）をストレージキーとし、
// メールアドレス→PlayerStateのマッピング全体を1オブジェクトとして読み書きする。
type GameRecord struct {
	MonthKey string                 `json:"monthKey"`
	Entries  map[string]PlayerState `json:"entries"`
}

// NewGameRecord は空のGameRecordを生成する。
// 新しい月キーは空のマッピングから始まる（月替わりで進行がリセットされる仕様）。
func NewGameRecord(monthKey string) *GameRecord {
	return &GameRecord{
		MonthKey: monthKey,
		Entries:  make(map[string]PlayerState),
	}
}

// StateFor は指定ユーザーの進行状態を返す。エントリが無い場合は空の状態を返す。
func (r *GameRecord) StateFor(email string) PlayerState {
	if r == nil {
		return EmptyPlayerState()
	}
	if state, ok := r.Entries[email]; ok {
		return state
	}
	return EmptyPlayerState()
}

// MonthKey は指定時刻が属する月の月キーを返す（例: "January-2025"）。
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%s-%d", t.Month().String(), t.Year())
}
