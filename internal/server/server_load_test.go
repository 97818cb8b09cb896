package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/pkg/models"
)

func newLoadTestServer(t testing.TB, requestsPerMinute int, opts ...Option) *httptest.Server {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: requestsPerMinute})
	opts = append([]Option{WithRateLimiter(rl), WithLogger(logging.NewNopLogger())}, opts...)
	srv := NewServer(engine.NewDefaultFactory(), config.AppConfig{Port: "0"}, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		rl.Stop()
	})
	return ts
}

// TestServerConcurrentRequests checks that concurrent clients all receive
// correct results.
func TestServerConcurrentRequests(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping load test in short mode")
	}
	ts := newLoadTestServer(t, 10000)

	const (
		numRequests   = 100
		numGoroutines = 10
	)
	var (
		successCount int64
		errorCount   int64
		wg           sync.WaitGroup
	)
	requestsPerGoroutine := numRequests / numGoroutines
	wg.Add(numGoroutines)
	start := time.Now()

	for i := 0; i < numGoroutines; i++ {
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{Timeout: 30 * time.Second}

			for j := 0; j < requestsPerGoroutine; j++ {
				n := workerID*requestsPerGoroutine + j + 1
				resp, err := client.Get(fmt.Sprintf("%s/calculate?op=mul&a=%d&b=%d", ts.URL, n, n))
				if err != nil {
					atomic.AddInt64(&errorCount, 1)
					continue
				}
				var result models.Result
				err = json.NewDecoder(resp.Body).Decode(&result)
				resp.Body.Close()
				if err == nil && resp.StatusCode == http.StatusOK && result.Result == fmt.Sprint(n*n) {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&errorCount, 1)
				}
			}
		}(i)
	}

	wg.Wait()
	t.Logf("%d requests in %v (%d ok, %d errors)", numRequests, time.Since(start), successCount, errorCount)
	if errorCount != 0 {
		t.Errorf("%d of %d requests failed", errorCount, numRequests)
	}
}

// TestServerRateLimiting checks that requests over the budget get 429.
func TestServerRateLimiting(t *testing.T) {
	t.Parallel()
	ts := newLoadTestServer(t, 5)
	client := &http.Client{Timeout: 5 * time.Second}

	var limited int
	for i := 0; i < 10; i++ {
		resp, err := client.Get(ts.URL + "/calculate?op=add&a=1&b=1")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			limited++
			if resp.Header.Get("Retry-After") != "60" {
				t.Error("429 responses should carry Retry-After")
			}
		}
	}
	if limited != 5 {
		t.Errorf("rate limited %d of 10 requests, want 5", limited)
	}
}

// TestServerSecurityHeaders checks the hardening and CORS headers.
func TestServerSecurityHeaders(t *testing.T) {
	t.Parallel()
	ts := newLoadTestServer(t, 100)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	expectedHeaders := map[string]string{
		"X-Content-Type-Options":      "nosniff",
		"X-Frame-Options":             "DENY",
		"Referrer-Policy":             "strict-origin-when-cross-origin",
		"Access-Control-Allow-Origin": "*",
	}
	for header, expected := range expectedHeaders {
		if actual := resp.Header.Get(header); actual != expected {
			t.Errorf("Header %s: expected %q, got %q", header, expected, actual)
		}
	}
}

func TestServerCORSPreflight(t *testing.T) {
	t.Parallel()
	sec := DefaultSecurityConfig()
	sec.AllowedOrigins = []string{"https://example.org"}
	ts := newLoadTestServer(t, 100, WithSecurityConfig(sec))

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/calculate", http.NoBody)
	req.Header.Set("Origin", "https://example.org")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "https://example.org" {
		t.Errorf("allow origin = %q", resp.Header.Get("Access-Control-Allow-Origin"))
	}

	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get("Access-Control-Allow-Origin") != "" {
		t.Error("unlisted origin should not be allowed")
	}
}

// TestServerMaxDigitsValidation checks the operand length limit end to end.
func TestServerMaxDigitsValidation(t *testing.T) {
	t.Parallel()
	sec := DefaultSecurityConfig()
	sec.MaxDigits = 50
	ts := newLoadTestServer(t, 100, WithSecurityConfig(sec))

	resp, err := http.Get(ts.URL + "/calculate?op=add&a=" + strings.Repeat("9", 51) + "&b=1")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if !strings.Contains(errResp.Message, "50 digits") {
		t.Errorf("message = %q", errResp.Message)
	}
}

// TestServerMetricsEndpoint checks that /metrics exposes the bigcalc series.
func TestServerMetricsEndpoint(t *testing.T) {
	t.Parallel()
	ts := newLoadTestServer(t, 100)

	resp, err := http.Get(ts.URL + "/calculate?op=pow&a=2&b=10")
	if err != nil {
		t.Fatalf("Calculation request failed: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("Metrics request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	for _, series := range []string{"bigcalc_requests_total", "bigcalc_active_requests", "bigcalc_operations_total"} {
		if !strings.Contains(string(body), series) {
			t.Errorf("metrics output missing %s", series)
		}
	}
}

// BenchmarkServerCalculate benchmarks the calculate endpoint.
func BenchmarkServerCalculate(b *testing.B) {
	ts := newLoadTestServer(b, 1_000_000_000)
	client := &http.Client{}
	url := ts.URL + "/calculate?op=mul&a=123456789123456789&b=987654321987654321"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp, err := client.Get(url)
		if err != nil {
			b.Fatal(err)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
