package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/peoplehub/internal/domain"
	"github.com/baechuer/peoplehub/internal/infrastructure/redis"
)

type RateLimiter interface {
	Allow(ctx context.Context, scope, identity string, limit int, window time.Duration) (redis.Decision, error)
}

// FixedWindowConfig defines one per-route rule.
type FixedWindowConfig struct {
	Scope  string
	Limit  int
	Window time.Duration
}

// RateLimitFixedWindow throttles by actor id when known, else by client IP.
// Limiter failures let the request through.
func RateLimitFixedWindow(limiter RateLimiter, cfg FixedWindowConfig, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Scope == "" {
		cfg.Scope = "unknown"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || cfg.Limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			dec, err := limiter.Allow(r.Context(), cfg.Scope, userOrIP(r), cfg.Limit, cfg.Window)
			if err != nil {
				zlog.Warn().Err(err).Str("scope", cfg.Scope).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(dec.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
			if !dec.Allowed {
				RateLimitedTotal.WithLabelValues(cfg.Scope).Inc()
				e := domain.ErrRateLimited(cfg.Scope)
				if dec.RetryAfter > 0 {
					e.Meta["retry_after"] = strconv.Itoa(int(dec.RetryAfter.Round(time.Second).Seconds()))
				}
				writeErr(w, r, e)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func userOrIP(r *http.Request) string {
	if a, ok := ActorFrom(r.Context()); ok {
		return "u:" + a.ID
	}
	return "ip:" + clientIP(r)
}

// clientIP relies on chi's RealIP having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
