package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Counters(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordLogin()
	c.RecordLogin()
	c.RecordGameUpdate()
	c.RecordNotificationSent()
	c.RecordNotificationFailed()

	if got := testutil.ToFloat64(c.loginsTotal); got != 2 {
		t.Errorf("logins total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.gameUpdatesTotal); got != 1 {
		t.Errorf("game updates total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.notificationsSent); got != 1 {
		t.Errorf("notifications sent = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.notificationsFailed); got != 1 {
		t.Errorf("notifications failed = %v, want 1", got)
	}
}

func TestCollector_HTTPStatusByCode(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	if got := testutil.ToFloat64(c.httpStatusTotal.WithLabelValues("200")); got != 2 {
		t.Errorf("status 200 count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.httpStatusTotal.WithLabelValues("404")); got != 1 {
		t.Errorf("status 404 count = %v, want 1", got)
	}
}

func TestCollector_Handler_ExposesMetrics(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	c.RecordLogin()
	c.RecordHTTPDuration(http.MethodGet, 120*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	c.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, "platechase_logins_total 1") {
		t.Errorf("metrics output missing logins counter:\n%s", body)
	}
	if !strings.Contains(body, "platechase_http_request_duration_seconds") {
		t.Error("metrics output missing duration histogram")
	}
}
