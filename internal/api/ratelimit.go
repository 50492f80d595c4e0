package api

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/bookspace/bookspace-server/internal/http/response"
	"github.com/bookspace/bookspace-server/internal/ratelimit"
)

// rateLimitMiddleware answers 429 when the client IP has exhausted its
// token bucket. Mounted on the auth routes only.
func rateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiter.Allow(ip) {
				if logger != nil {
					logger.Warn("Rate limit exceeded", "ip", ip, "path", r.URL.Path)
				}
				response.TooManyRequests(w, "Too many requests. Please try again later.", logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP picks the address to throttle on: the first hop of
// X-Forwarded-For, then X-Real-IP, then RemoteAddr without its port.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
