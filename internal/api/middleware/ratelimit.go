package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-client limiter backed by Redis so
// every gateway instance shares one budget. Redis being down never
// blocks traffic; the limiter fails open.
type RateLimiter struct {
	redis  *redis.Client
	limit  int64
	window time.Duration
	logger *slog.Logger
}

func NewRateLimiter(client *redis.Client, limit int64, window time.Duration, logger *slog.Logger) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{redis: client, limit: limit, window: window, logger: logger}
}

func (l *RateLimiter) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("ratelimit:%s", clientIP(r))

		count, err := l.redis.Incr(r.Context(), key).Result()
		if err != nil {
			l.logger.Warn("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			l.redis.Expire(r.Context(), key, l.window)
		}
		if count > l.limit {
			respondError(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	// RealIP middleware rewrites RemoteAddr when forwarded headers are
	// present, in which case there is no port to strip.
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
