package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimit applies a per-client-IP token bucket. Used on the login route to
// slow credential stuffing; limits are generous enough for humans.
func RateLimit(limit rate.Limit, burst int) echo.MiddlewareFunc {
	rl := &ipRateLimiter{
		limit:    limit,
		burst:    burst,
		visitors: make(map[string]*visitor),
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipRateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor
}

func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	// Prune idle entries opportunistically instead of running a janitor.
	for addr, vis := range rl.visitors {
		if now.Sub(vis.lastSeen) > limiterIdleTTL {
			delete(rl.visitors, addr)
		}
	}

	return v.limiter.Allow()
}
