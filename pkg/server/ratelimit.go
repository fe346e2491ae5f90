package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Default rate-limit tuning for the spectator feed. A handful of
// observers reconnecting around a restart is the only load this endpoint
// ever sees, so these are fixed constants rather than a config surface.
const (
	defaultRequestsPerSecond = 5
	defaultBurst             = 10
	defaultCleanupInterval   = 5 * time.Minute
)

// RateLimiter manages per-IP rate limiting using the token bucket
// algorithm. It tracks a rate.Limiter per client IP and periodically
// evicts ones that have gone idle, so a stream of distinct reconnecting
// IPs cannot grow the map unbounded.
type RateLimiter struct {
	limiters          map[string]*rateLimiterEntry
	mu                sync.RWMutex
	requestsPerSecond rate.Limit
	burst             int
	cleanupInterval   time.Duration
	maxAge            time.Duration
	ctx               context.Context
	cancel            context.CancelFunc
}

type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter starts a RateLimiter with the package's default
// request-rate and burst settings, along with its background cleanup
// goroutine.
func NewRateLimiter() *RateLimiter {
	ctx, cancel := context.WithCancel(context.Background())
	rl := &RateLimiter{
		limiters:          make(map[string]*rateLimiterEntry),
		requestsPerSecond: rate.Limit(defaultRequestsPerSecond),
		burst:             defaultBurst,
		cleanupInterval:   defaultCleanupInterval,
		maxAge:            defaultCleanupInterval * 5,
		ctx:               ctx,
		cancel:            cancel,
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether a request from ip should proceed, creating a
// fresh limiter for IPs seen for the first time.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[ip]
	if !exists {
		entry = &rateLimiterEntry{
			limiter:    rate.NewLimiter(rl.requestsPerSecond, rl.burst),
			lastAccess: time.Now(),
		}
		rl.limiters[ip] = entry
	} else {
		entry.lastAccess = time.Now()
	}
	return entry.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	removed := 0
	for ip, entry := range rl.limiters {
		if now.Sub(entry.lastAccess) > rl.maxAge {
			delete(rl.limiters, ip)
			removed++
		}
	}
	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"removed_limiters": removed,
			"active_limiters":  len(rl.limiters),
		}).Debug("cleaned up expired rate limiters")
	}
}

// Close stops the background cleanup goroutine.
func (rl *RateLimiter) Close() {
	if rl.cancel != nil {
		rl.cancel()
	}
}

// rateLimitMiddleware rejects requests exceeding the per-IP rate with
// 429 Too Many Requests, ahead of the WebSocket upgrade.
func rateLimitMiddleware(rl *RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.Allow(ip) {
			logrus.WithFields(logrus.Fields{
				"client_ip": ip,
				"path":      r.URL.Path,
			}).Warn("spectator request rate limited")
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the X-Forwarded-For header verbatim when it is set,
// otherwise the request's remote IP with any port stripped.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
