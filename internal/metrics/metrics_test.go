package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordMutation(t *testing.T) {
	_, m := NewRegistry()

	m.RecordMutation("add", "ok")
	m.RecordMutation("add", "ok")
	m.RecordMutation("add", "CYCLE_DETECTED")

	if got := testutil.ToFloat64(m.DependencyMutations.WithLabelValues("add", "ok")); got != 2 {
		t.Errorf("add/ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.DependencyMutations.WithLabelValues("add", "CYCLE_DETECTED")); got != 1 {
		t.Errorf("add/CYCLE_DETECTED = %v, want 1", got)
	}
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	m.RecordMutation("add", "ok")
	m.ObserveCycleCheck(time.Millisecond)
	m.ObserveHTTP("GET", "/v1/health", "200", time.Millisecond)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	reg, m := NewRegistry()
	m.ObserveCycleCheck(2 * time.Millisecond)
	m.ObserveHTTP("POST", "/v1/tasks/{taskID}/dependencies", "201", 5*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{
		"hearth_cycle_check_duration_seconds",
		"hearth_http_requests_total",
		"hearth_http_request_duration_seconds",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("exposition missing %s", name)
		}
	}
}
