package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"time"

	"SereneCMSAPI/internal/config"
	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/model"
	"SereneCMSAPI/internal/repository"
)

type RateLimitMiddleware struct {
	repo              *repository.RateLimitRepository
	trustedProxyCIDRs []*net.IPNet
}

func NewRateLimitMiddleware(repo *repository.RateLimitRepository, cfg *config.AppConfig) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		repo:              repo,
		trustedProxyCIDRs: parseTrustedProxyCIDRs(cfg.TrustedProxyCIDRs),
	}
}

// Limit applies a fixed window counter per caller. Authenticated requests
// are keyed by user id, anonymous ones by client IP.
func (m *RateLimitMiddleware) Limit(keyName string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var key string
			if user, ok := r.Context().Value(UserContextKey).(*model.UserDTO); ok && user != nil {
				key = fmt.Sprintf("ratelimit:user:%s:%s", keyName, user.ID)
			} else {
				key = fmt.Sprintf("ratelimit:ip:%s:%s", keyName, clientIP(r, m.trustedProxyCIDRs))
			}

			allowed, ttl, err := m.repo.Allow(r.Context(), key, limit, window)
			if err != nil {
				slog.Error("Rate limit check failed", "error", err)
				helper.WriteError(w, helper.NewServiceUnavailableError("Rate limiting service unavailable"))
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", int(ttl.Seconds())))

			if !allowed {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(ttl.Seconds()))))

				helper.WriteError(w, helper.NewTooManyRequestsError("Rate limit exceeded. Please try again later."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
