// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はアプリケーションのメトリクスを保持する。
type Collector struct {
	httpStatusTotal     *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	loginsTotal         prometheus.Counter
	gameUpdatesTotal    prometheus.Counter
	notificationsSent   prometheus.Counter
	notificationsFailed prometheus.Counter

	registry *prometheus.Registry
}

// NewCollector はCollectorを生成し、メトリクスをregに登録する。
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		httpStatusTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "platechase_http_status_total",
			Help: "Total number of HTTP responses by status code.",
		}, []string{"status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "platechase_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		loginsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "platechase_logins_total",
			Help: "Total number of successful logins.",
		}),
		gameUpdatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "platechase_game_updates_total",
			Help: "Total number of game state updates.",
		}),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "platechase_notifications_sent_total",
			Help: "Total number of notification emails sent.",
		}),
		notificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "platechase_notifications_failed_total",
			Help: "Total number of notification emails that failed to send.",
		}),
		registry: reg,
	}

	reg.MustRegister(
		c.httpStatusTotal,
		c.httpDuration,
		c.loginsTotal,
		c.gameUpdatesTotal,
		c.notificationsSent,
		c.notificationsFailed,
	)

	return c
}

// RecordHTTPStatus はHTTPレスポンスのステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(status int) {
	c.httpStatusTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}

// RecordHTTPDuration はHTTPリクエストの処理時間を記録する。
func (c *Collector) RecordHTTPDuration(method string, d time.Duration) {
	c.httpDuration.WithLabelValues(method).Observe(d.Seconds())
}

// RecordLogin はログイン成功を記録する。
func (c *Collector) RecordLogin() {
	c.loginsTotal.Inc()
}

// RecordGameUpdate はゲーム状態の更新を記録する。
func (c *Collector) RecordGameUpdate() {
	c.gameUpdatesTotal.Inc()
}

// RecordNotificationSent は通知送信成功を記録する。
func (c *Collector) RecordNotificationSent() {
	c.notificationsSent.Inc()
}

// RecordNotificationFailed は通知送信失敗を記録する。
func (c *Collector) RecordNotificationFailed() {
	c.notificationsFailed.Inc()
}

// Handler はメトリクス公開用のHTTPハンドラーを返す。
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
