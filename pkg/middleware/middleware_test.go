package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func TestLoggingWritesOneLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := Logging(logger)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	out := buf.String()
	if !strings.Contains(out, "path=/hello") || !strings.Contains(out, "status=200") {
		t.Fatalf("log line missing fields: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Fatalf("lines = %d, want 1", got)
	}
}

func TestLoggingRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if !strings.Contains(buf.String(), "status=404") {
		t.Fatalf("log = %q", buf.String())
	}
}

func TestRecoverConvertsPanic(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}

func TestMetricsCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := Metrics(WithRegistry(reg))(okHandler())

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	}

	want := strings.NewReader(`
# HELP glint_http_requests_total Total number of HTTP requests served
# TYPE glint_http_requests_total counter
glint_http_requests_total{method="GET",status="200"} 3
`)
	if err := testutil.GatherAndCompare(reg, want, "glint_http_requests_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestMetricsCustomNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := Metrics(WithRegistry(reg), WithNamespace("myapp"), WithSubsystem("web"))(okHandler())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	want := strings.NewReader(`
# HELP myapp_web_requests_total Total number of HTTP requests served
# TYPE myapp_web_requests_total counter
myapp_web_requests_total{method="GET",status="200"} 1
`)
	if err := testutil.GatherAndCompare(reg, want, "myapp_web_requests_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestOpenTelemetryPassesThrough(t *testing.T) {
	// Without a configured provider the global tracer is a no-op; the
	// middleware must still serve the request.
	h := OpenTelemetry()(okHandler())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/traced", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("status = %d body = %q", rr.Code, rr.Body.String())
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	h := OpenTelemetry(WithRequestFilter(func(r *http.Request) bool {
		return !strings.HasPrefix(r.URL.Path, "/health")
	}))(okHandler())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}
