package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	cleanupInterval = 5 * time.Minute
	visitorIdleTTL  = 10 * time.Minute
)

// RateLimiter holds per-IP token buckets. Used on the login and signup
// routes to slow down credential guessing.
type RateLimiter struct {
	visitors   map[string]*visitor
	mu         sync.Mutex
	rate       rate.Limit
	burst      int
	trustProxy bool
	done       chan struct{}
	stopOnce   sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter allowing rps requests per
// second with the given burst per client IP. trustProxy controls
// whether X-Forwarded-For/X-Real-IP are honored; enable it only
// behind a proxy that sets them, otherwise clients can mint a fresh
// bucket per request.
func NewRateLimiter(rps rate.Limit, burst int, trustProxy bool) *RateLimiter {
	rl := &RateLimiter{
		visitors:   make(map[string]*visitor),
		rate:       rps,
		burst:      burst,
		trustProxy: trustProxy,
		done:       make(chan struct{}),
	}
	go rl.cleanupVisitors()
	return rl
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.done)
	})
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors drops idle entries so the map does not grow without
// bound. Exits when Stop is called.
func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.removeStale(time.Now().Add(-visitorIdleTTL))
		}
	}
}

func (rl *RateLimiter) removeStale(cutoff time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

// Wrap applies the rate limit to a single handler.
func (rl *RateLimiter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.getVisitor(rl.clientIP(r)).Allow() {
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP derives the bucket key for a request. Proxy headers count
// only when the limiter was told to trust them.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if rl.trustProxy {
		if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
			return ip
		}
		if ip := r.Header.Get("X-Real-IP"); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
