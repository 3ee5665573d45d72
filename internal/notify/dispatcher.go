// Package notify は訪問状態の変化をメールで通知する。
// 通知はベストエフォートであり、失敗してもゲーム更新には影響しない。
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/platechase/internal/metrics"
	"github.com/hitoshi/platechase/internal/region"
)

// dispatchTimeout は1通の通知送信に許す最大時間。
const dispatchTimeout = 10 * time.Second

// Mailer はメール送信のインターフェース。
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Dispatcher は状態変化の通知を組み立てて送信する。
// mailerがnilの場合、通知は無効化される。
type Dispatcher struct {
	mailer    Mailer
	notifyTo  string
	logger    *slog.Logger
	collector *metrics.Collector
}

// NewDispatcher はDispatcherを生成する。collectorはnil可。
func NewDispatcher(mailer Mailer, notifyTo string, logger *slog.Logger, collector *metrics.Collector) *Dispatcher {
	return &Dispatcher{
		mailer:    mailer,
		notifyTo:  notifyTo,
		logger:    logger,
		collector: collector,
	}
}

// NotifyChanges は通知を非同期で送信する。
// リクエストのライフサイクルに縛られないよう独自のタイムアウト付きcontextを使う。
func (d *Dispatcher) NotifyChanges(email string, added, removed []string) {
	if d.mailer == nil || d.notifyTo == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		d.Dispatch(ctx, email, added, removed)
	}()
}

// Dispatch は通知を同期的に送信する。追加・削除された地域ごとに1通送る。
// 失敗はログとメトリクスに記録するだけで握りつぶす。
func (d *Dispatcher) Dispatch(ctx context.Context, email string, added, removed []string) {
	if d.mailer == nil || d.notifyTo == "" {
		return
	}

	for _, code := range added {
		subject := fmt.Sprintf("Plate Chase: %s spotted %s", email, regionLabel(code))
		body := fmt.Sprintf("%s marked %s as visited.\n", email, regionLabel(code))
		d.send(ctx, email, subject, body)
	}
	for _, code := range removed {
		subject := fmt.Sprintf("Plate Chase: %s unmarked %s", email, regionLabel(code))
		body := fmt.Sprintf("%s removed %s from their visited regions.\n", email, regionLabel(code))
		d.send(ctx, email, subject, body)
	}
}

func (d *Dispatcher) send(ctx context.Context, email, subject, body string) {
	if err := d.mailer.Send(ctx, d.notifyTo, subject, body); err != nil {
		if d.logger != nil {
			d.logger.Warn("failed to send notification email",
				slog.String("email", email),
				slog.String("error", err.Error()))
		}
		if d.collector != nil {
			d.collector.RecordNotificationFailed()
		}
		return
	}

	if d.collector != nil {
		d.collector.RecordNotificationSent()
	}
}

func regionLabel(code string) string {
	if name, ok := region.Name(code); ok {
		return fmt.Sprintf("%s (%s)", name, code)
	}
	return code
}
