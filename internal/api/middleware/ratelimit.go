package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"riskguard-lab/internal/config"
	"riskguard-lab/internal/infrastructure/cache"
)

// Limiter decides whether a request from the given client identity may
// proceed within the window
type Limiter interface {
	Allow(ctx context.Context, clientID string, limit int, window time.Duration) (allowed bool, remaining int64, reset time.Time, err error)
}

// RedisLimiter enforces a fixed window counter shared across instances
type RedisLimiter struct {
	cache *cache.RedisCache
}

// NewRedisLimiter creates a limiter backed by the shared cache
func NewRedisLimiter(c *cache.RedisCache) *RedisLimiter {
	return &RedisLimiter{cache: c}
}

func (l *RedisLimiter) Allow(ctx context.Context, clientID string, limit int, window time.Duration) (bool, int64, time.Time, error) {
	return l.cache.CheckRateLimit(ctx, clientID, int64(limit), window)
}

// MemoryLimiter enforces a per-process sliding window. Used when Redis
// is not configured; counts are not shared between instances.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
}

// NewMemoryLimiter creates an in-process limiter
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{windows: make(map[string][]time.Time)}
}

func (l *MemoryLimiter) Allow(_ context.Context, clientID string, limit int, window time.Duration) (bool, int64, time.Time, error) {
	now := time.Now()
	cutoff := now.Add(-window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.windows[clientID][:0]
	for _, t := range l.windows[clientID] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= limit {
		l.windows[clientID] = kept
		return false, 0, kept[0].Add(window), nil
	}

	kept = append(kept, now)
	l.windows[clientID] = kept
	return true, int64(limit - len(kept)), now.Add(window), nil
}

// RateLimiter returns middleware that throttles requests per client
// identity. Limiter errors fail open: the request proceeds uncounted.
func RateLimiter(limiter Limiter, cfg config.RateLimitConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			clientID := getClientID(r)
			allowed, remaining, reset, err := limiter.Allow(
				r.Context(),
				clientID,
				cfg.RequestsPerMinute,
				time.Minute,
			)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerMinute))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if !allowed {
				w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(reset).Seconds())+1, 10))
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientID identifies the client by API key identity, falling back
// to the forwarded or remote address
func getClientID(r *http.Request) string {
	if id := Identity(r.Context()); id != "" && id != PublicIdentity {
		return fmt.Sprintf("key:%s", id)
	}

	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.Header.Get("X-Real-IP")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return fmt.Sprintf("ip:%s", ip)
}
