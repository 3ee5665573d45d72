package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// --- モック定義 ---

type sentMail struct {
	to      string
	subject string
	body    string
}

type mockMailer struct {
	sent   []sentMail
	sendFn func(ctx context.Context, to, subject, body string) error
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.sendFn != nil {
		if err := m.sendFn(ctx, to, subject, body); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

var _ Mailer = (*mockMailer)(nil)

// --- テスト ---

func TestDispatch_OneMailPerChange(t *testing.T) {
	mailer := &mockMailer{}
	d := NewDispatcher(mailer, "owner@example.com", nil, nil)

	d.Dispatch(context.Background(), "player@example.com", []string{"CA", "TX"}, []string{"NY"})

	if len(mailer.sent) != 3 {
		t.Fatalf("expected 3 mails, got %d", len(mailer.sent))
	}

	for _, mail := range mailer.sent {
		if mail.to != "owner@example.com" {
			t.Errorf("mail to = %q, want owner@example.com", mail.to)
		}
	}

	// 追加分は正式名称に展開される
	if !strings.Contains(mailer.sent[0].subject, "California (CA)") {
		t.Errorf("subject = %q, want it to contain California (CA)", mailer.sent[0].subject)
	}
	if !strings.Contains(mailer.sent[2].subject, "unmarked") {
		t.Errorf("subject = %q, want it to mention unmarked", mailer.sent[2].subject)
	}
}

func TestDispatch_UnknownCodeFallsBackToRawCode(t *testing.T) {
	mailer := &mockMailer{}
	d := NewDispatcher(mailer, "owner@example.com", nil, nil)

	d.Dispatch(context.Background(), "player@example.com", []string{"XX"}, nil)

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}
	if !strings.Contains(mailer.sent[0].subject, "XX") {
		t.Errorf("subject = %q, want it to contain the raw code XX", mailer.sent[0].subject)
	}
}

func TestDispatch_SendFailureIsSwallowed(t *testing.T) {
	mailer := &mockMailer{
		sendFn: func(ctx context.Context, to, subject, body string) error {
			return errors.New("ses unavailable")
		},
	}
	d := NewDispatcher(mailer, "owner@example.com", nil, nil)

	// panicもエラー伝搬もしないこと
	d.Dispatch(context.Background(), "player@example.com", []string{"CA"}, nil)

	if len(mailer.sent) != 0 {
		t.Errorf("expected no successful sends, got %d", len(mailer.sent))
	}
}

func TestDispatch_NilMailerIsNoop(t *testing.T) {
	d := NewDispatcher(nil, "owner@example.com", nil, nil)

	// panicしないこと
	d.Dispatch(context.Background(), "player@example.com", []string{"CA"}, nil)
	d.NotifyChanges("player@example.com", []string{"CA"}, nil)
}

func TestDispatch_EmptyRecipientIsNoop(t *testing.T) {
	mailer := &mockMailer{}
	d := NewDispatcher(mailer, "", nil, nil)

	d.Dispatch(context.Background(), "player@example.com", []string{"CA"}, nil)

	if len(mailer.sent) != 0 {
		t.Errorf("expected no sends without recipient, got %d", len(mailer.sent))
	}
}
