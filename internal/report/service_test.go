package report

import (
	"context"
	"testing"

	"github.com/hitoshi/platechase/internal/model"
	"github.com/hitoshi/platechase/internal/repository"
)

// --- モック定義 ---

type mockGameRepo struct {
	records map[string]*model.GameRecord
	keys    []string
}

func (m *mockGameRepo) Find(_ context.Context, monthKey string) (*model.GameRecord, error) {
	return m.records[monthKey], nil
}

func (m *mockGameRepo) Put(_ context.Context, _ *model.GameRecord) error {
	return nil
}

func (m *mockGameRepo) ListMonthKeys(_ context.Context) ([]string, error) {
	return m.keys, nil
}

var _ repository.GameRepository = (*mockGameRepo)(nil)

// newTestRepo は2か月・3プレイヤー分のレコードを持つモックを返す。
func newTestRepo() *mockGameRepo {
	jan := model.NewGameRecord("January-2025")
	jan.Entries["bob@example.com"] = model.PlayerState{VisitedStates: []string{"CA", "NY"}}
	jan.Entries["alice@example.com"] = model.PlayerState{VisitedStates: []string{"TX"}}

	feb := model.NewGameRecord("February-2025")
	feb.Entries["carol@example.com"] = model.PlayerState{VisitedStates: []string{"ON", "QC", "BC"}}

	return &mockGameRepo{
		records: map[string]*model.GameRecord{
			"January-2025":  jan,
			"February-2025": feb,
		},
		keys: []string{"February-2025", "January-2025"},
	}
}

// --- テスト ---

func TestList_DeterministicOrder(t *testing.T) {
	svc := NewService(newTestRepo())

	rows, total, err := svc.List(context.Background(), 100, 0, false)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	// 月キー→メールアドレス順
	if rows[0].Month != "February-2025" || rows[0].Email != "carol@example.com" {
		t.Errorf("rows[0] = %s/%s, want February-2025/carol@example.com", rows[0].Month, rows[0].Email)
	}
	if rows[1].Email != "alice@example.com" {
		t.Errorf("rows[1].Email = %q, want alice@example.com", rows[1].Email)
	}
	if rows[2].Email != "bob@example.com" {
		t.Errorf("rows[2].Email = %q, want bob@example.com", rows[2].Email)
	}

	if rows[0].VisitedCount != 3 {
		t.Errorf("rows[0].VisitedCount = %d, want 3", rows[0].VisitedCount)
	}
}

func TestList_Pagination(t *testing.T) {
	svc := NewService(newTestRepo())

	rows, total, err := svc.List(context.Background(), 1, 1, false)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].Email != "alice@example.com" {
		t.Errorf("rows[0].Email = %q, want alice@example.com", rows[0].Email)
	}
}

func TestList_OffsetBeyondTotal(t *testing.T) {
	svc := NewService(newTestRepo())

	rows, total, err := svc.List(context.Background(), 100, 10, false)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestList_AnonymizesEmails(t *testing.T) {
	svc := NewService(newTestRepo())

	rows, _, err := svc.List(context.Background(), 100, 0, true)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	for _, row := range rows {
		if row.Email == "alice@example.com" || row.Email == "bob@example.com" || row.Email == "carol@example.com" {
			t.Errorf("email %q should be anonymized", row.Email)
		}
	}

	// 伏せ字の形を1件だけ確認
	if rows[0].Email != "c****@example.com" {
		t.Errorf("rows[0].Email = %q, want c****@example.com", rows[0].Email)
	}
}

func TestList_EmptyStore(t *testing.T) {
	svc := NewService(&mockGameRepo{})

	rows, total, err := svc.List(context.Background(), 100, 0, false)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}
