package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func newLimitedHandler(t *testing.T, rps rate.Limit, burst int, trustProxy bool) (*RateLimiter, http.Handler) {
	t.Helper()

	rl := NewRateLimiter(rps, burst, trustProxy)
	t.Cleanup(rl.Stop)
	handler := rl.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return rl, handler
}

func doRequest(handler http.Handler, remoteAddr string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	_, handler := newLimitedHandler(t, rate.Limit(1), 2, false)

	for i := 0; i < 2; i++ {
		if w := doRequest(handler, "10.0.0.1:1234", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	if w := doRequest(handler, "10.0.0.1:1234", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", w.Code)
	}
}

func TestRateLimiter_IPsAreIndependent(t *testing.T) {
	_, handler := newLimitedHandler(t, rate.Limit(1), 1, false)

	doRequest(handler, "10.0.0.1:1234", nil)
	if w := doRequest(handler, "10.0.0.1:1234", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for exhausted IP, got %d", w.Code)
	}

	if w := doRequest(handler, "10.0.0.2:1234", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for fresh IP, got %d", w.Code)
	}
}

func TestRateLimiter_SpoofedHeaderDoesNotBypass(t *testing.T) {
	_, handler := newLimitedHandler(t, rate.Limit(1), 1, false)

	doRequest(handler, "10.0.0.1:1234", map[string]string{"X-Forwarded-For": "1.1.1.1"})
	w := doRequest(handler, "10.0.0.1:1234", map[string]string{"X-Forwarded-For": "2.2.2.2"})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("spoofed X-Forwarded-For bypassed the limiter: got %d", w.Code)
	}
}

func TestRateLimiter_TrustedProxyKeysOnHeader(t *testing.T) {
	_, handler := newLimitedHandler(t, rate.Limit(1), 1, true)

	doRequest(handler, "10.0.0.1:1234", map[string]string{"X-Forwarded-For": "1.1.1.1"})
	if w := doRequest(handler, "10.0.0.1:1234", map[string]string{"X-Forwarded-For": "1.1.1.1"}); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for repeated forwarded IP, got %d", w.Code)
	}

	if w := doRequest(handler, "10.0.0.1:1234", map[string]string{"X-Forwarded-For": "2.2.2.2"}); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for distinct forwarded IP behind trusted proxy, got %d", w.Code)
	}
}

func TestRateLimiter_RemoveStaleDropsIdleVisitors(t *testing.T) {
	rl, _ := newLimitedHandler(t, rate.Limit(1), 1, false)

	rl.getVisitor("10.0.0.1")
	rl.getVisitor("10.0.0.2")
	rl.mu.Lock()
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.removeStale(time.Now().Add(-visitorIdleTTL))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.visitors["10.0.0.1"]; ok {
		t.Errorf("stale visitor was not removed")
	}
	if _, ok := rl.visitors["10.0.0.2"]; !ok {
		t.Errorf("fresh visitor was removed")
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1, false)
	rl.Stop()
	rl.Stop()
}
