package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/galaxyhq/galaxy/internal/ctxkeys"
	"github.com/galaxyhq/galaxy/internal/service"
)

// RateLimit creates middleware that throttles a route per client IP
// Counters live in the database so limits hold across restarts and replicas
func RateLimit(limiter *service.RateLimitService, bucket string, limit int, window time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := ctxkeys.ClientIP(r.Context())
			if ip == "" {
				ip = getClientIP(r)
			}

			err := limiter.Require(service.IPKey(ip), bucket, limit, window)
			if err != nil {
				var limited *service.RateLimitedError
				if errors.As(err, &limited) {
					slog.Warn("rate limit exceeded",
						"ip", ip,
						"bucket", bucket,
						"path", r.URL.Path,
					)
					w.Header().Set("Retry-After", strconv.Itoa(limited.RetryAfter))
					writeJSONError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
					return
				}

				slog.Error("rate limit check failed", "bucket", bucket, "error", err)
				writeJSONError(w, http.StatusInternalServerError, "internal_error", "internal server error")
				return
			}

			next(w, r)
		}
	}
}

// RateLimitAuth creates middleware for auth endpoints
// Limits: 5 requests per 15 minutes per IP
func RateLimitAuth(limiter *service.RateLimitService) func(http.HandlerFunc) http.HandlerFunc {
	return RateLimit(limiter, "auth:attempt", 5, 15*time.Minute)
}
