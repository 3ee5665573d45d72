// Package report は全月・全プレイヤーの訪問状況レポートを提供する。
package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/hitoshi/platechase/internal/model"
	"github.com/hitoshi/platechase/internal/repository"
)

// MaxLimit はレポート1回の取得で許される最大件数。
const MaxLimit = 1000

// DefaultLimit はlimit未指定時の取得件数。
const DefaultLimit = 100

// Row はレポートの1行。ある月のある1人のプレイヤー状況を表す。
type Row struct {
	Month         string   `json:"month"`
	Email         string   `json:"email"`
	VisitedStates []string `json:"visited_states"`
	VisitedCount  int      `json:"visited_count"`
}

// Service はレポートサービス。
type Service struct {
	games repository.GameRepository
}

// NewService はServiceを生成する。
func NewService(games repository.GameRepository) *Service {
	return &Service{games: games}
}

// List は全月のレポート行をページングして返す。totalは全体の行数。
// 行は月キー、メールアドレスの順でソートされ、同じ引数なら常に同じ結果になる。
// anonymizeがtrueの場合、メールアドレスは伏せ字化される。
func (s *Service) List(ctx context.Context, limit, offset int, anonymize bool) ([]Row, int, error) {
	monthKeys, err := s.games.ListMonthKeys(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list month keys: %w", err)
	}

	var rows []Row
	for _, monthKey := range monthKeys {
		record, err := s.games.Find(ctx, monthKey)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to find game record %q: %w", monthKey, err)
		}
		if record == nil {
			continue
		}
		rows = append(rows, recordRows(record)...)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].Email < rows[j].Email
	})

	total := len(rows)

	if offset >= total {
		rows = nil
	} else {
		end := offset + limit
		if end > total {
			end = total
		}
		rows = rows[offset:end]
	}

	if anonymize {
		for i := range rows {
			rows[i].Email = AnonymizeEmail(rows[i].Email)
		}
	}

	return rows, total, nil
}

func recordRows(record *model.GameRecord) []Row {
	rows := make([]Row, 0, len(record.Entries))
	for email, state := range record.Entries {
		rows = append(rows, Row{
			Month:         record.MonthKey,
			Email:         email,
			VisitedStates: state.VisitedStates,
			VisitedCount:  len(state.VisitedStates),
		})
	}
	return rows
}
