package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/weeks", 200, time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveAggregateOperation("class.create", "success", time.Millisecond)
	m.IncAggregateConflict("class.create")
	m.ObserveQuizGrade(50)
	m.ObserveClassCodeAttempts(1)
	m.IncClassCodeCache("hit")
	m.IncGuideResolution("student", "inline")
	m.IncImport("quiz", 200)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 from nil metrics handler, got %d", rec.Code)
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/api/classes", 201, 20*time.Millisecond)
	m.ObserveAPI("POST", "/api/classes", 201, 30*time.Millisecond)
	m.ObserveQuizGrade(100)
	m.ObserveQuizGrade(0)
	m.IncAggregateConflict("class.create")

	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("POST", "/api/classes", "201")); got != 2 {
		t.Fatalf("api requests: got %v", got)
	}
	if got := testutil.ToFloat64(m.quizGrades.WithLabelValues("perfect")); got != 1 {
		t.Fatalf("perfect grades: got %v", got)
	}
	if got := testutil.ToFloat64(m.aggregateConflicts.WithLabelValues("class.create")); got != 1 {
		t.Fatalf("conflicts: got %v", got)
	}
}

func TestMetrics_HandlerExposesSeries(t *testing.T) {
	m := NewMetrics()
	m.IncImport("quiz", 401)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !strings.Contains(string(body), `classroom_content_imports_total{kind="quiz",status="401"} 1`) {
		t.Fatalf("missing import series in:\n%s", body)
	}
}

func TestEnabled(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "")
	if Enabled() {
		t.Fatalf("expected disabled by default")
	}
	t.Setenv("METRICS_ENABLED", "true")
	if !Enabled() {
		t.Fatalf("expected enabled")
	}
}
