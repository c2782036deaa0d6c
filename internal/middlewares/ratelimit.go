package middlewares

import (
	"math"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/recipe-api/internal/logger"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware rejects requests beyond limit per second (with burst) using
// a token bucket shared by all clients. A non-positive limit disables it.
func RateLimitMiddleware(limit float64, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}

		limiter := rate.NewLimiter(rate.Limit(limit), burst)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				rateLimitRejects.Inc()
				retryAfter := int(math.Ceil(1 / limit))
				logger.Log.Infow("rate limit exceeded", "method", r.Method, "uri", r.RequestURI)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				writeError(w, http.StatusTooManyRequests, "Request was throttled.")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(int(limit)))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
			next.ServeHTTP(w, r)
		})
	}
}
