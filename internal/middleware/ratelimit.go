package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/connectchain/admin-api/pkg/logger"
)

// RateLimiter implements fixed-window rate limiting backed by Redis.
// Each client gets maxRequests per window; counters expire with the window.
type RateLimiter struct {
	redis       *redis.Client
	maxRequests int
	window      time.Duration
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redisClient *redis.Client, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:       redisClient,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := clientIP(r)

			count, resetIn, err := rl.hit(r, identifier)
			if err != nil {
				// On limiter failure, allow the request but log it
				logger.Logger.Error().
					Err(err).
					Str("identifier", identifier).
					Msg("Rate limiter error")
				next.ServeHTTP(w, r)
				return
			}

			remaining := rl.maxRequests - count
			if remaining < 0 {
				remaining = 0
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.maxRequests))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(resetIn).Unix()))

			if count > rl.maxRequests {
				logger.Logger.Warn().
					Str("identifier", identifier).
					Int("limit", rl.maxRequests).
					Msg("Rate limit exceeded")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"message": fmt.Sprintf("Too many requests. Try again in %v", resetIn.Round(time.Second)),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// hit increments the fixed-window counter and returns its current value
// plus the time until the window resets
func (rl *RateLimiter) hit(r *http.Request, identifier string) (int, time.Duration, error) {
	ctx := r.Context()
	window := time.Now().Unix() / int64(rl.window.Seconds())
	key := fmt.Sprintf("ratelimit:%s:%d", identifier, window)

	pipe := rl.redis.Pipeline()
	countCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	windowEnd := time.Unix((window+1)*int64(rl.window.Seconds()), 0)
	return int(countCmd.Val()), time.Until(windowEnd), nil
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// First entry is the originating client; the rest are proxies
		if idx := strings.Index(forwarded, ","); idx >= 0 {
			forwarded = forwarded[:idx]
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
