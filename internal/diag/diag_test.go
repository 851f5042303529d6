package diag

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics()
	m.Observe("/health", http.MethodGet, http.StatusOK, 3*time.Millisecond)
	m.Observe("/health", http.MethodGet, http.StatusOK, 2*time.Millisecond)
	m.Observe("", http.MethodGet, http.StatusNotFound, time.Millisecond)

	body := scrape(t, m)
	wants := []string{
		`mortgagesim_http_requests_total{method="GET",route="/health",status="200"} 2`,
		`mortgagesim_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
		`mortgagesim_http_request_duration_seconds_count{route="/health"} 2`,
		"go_goroutines",
	}
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNewServerRoutes(t *testing.T) {
	m := NewMetrics()
	srv := NewServer("127.0.0.1:0", m)

	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /metrics status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET / status = %d, want 404", rec.Code)
	}
}

func TestStartProfiler(t *testing.T) {
	p, err := StartProfiler("127.0.0.1:0")
	if err != nil {
		t.Fatalf("StartProfiler() error = %v", err)
	}
	if p == nil || !p.MEMProfile {
		t.Fatalf("StartProfiler() = %+v, want a profiler with memory profiling on", p)
	}
}
