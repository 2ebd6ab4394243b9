package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"resumeforge/internal/config"
	"resumeforge/pkg/models"
)

// accountLimiter tracks one account's generation rate limiter.
type accountLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// GenerationRateLimit limits generation requests per account. Accounts are
// read from the account_id query parameter or X-Account-ID header; requests
// without either share the anonymous bucket.
func GenerationRateLimit(cfg *config.Config) echo.MiddlewareFunc {
	perMinute := cfg.RateLimit.GenerationsPerMinute
	if perMinute <= 0 {
		perMinute = 6
	}
	burst := cfg.RateLimit.Burst
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Every(time.Minute / time.Duration(perMinute))

	var mu sync.Mutex
	limiters := make(map[string]*accountLimiter)

	// Drop limiters idle for an hour so the map doesn't grow unbounded.
	cleanup := func(now time.Time) {
		for id, al := range limiters {
			if now.Sub(al.lastSeen) > time.Hour {
				delete(limiters, id)
			}
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accountID := c.QueryParam("account_id")
			if accountID == "" {
				accountID = c.Request().Header.Get("X-Account-ID")
			}
			if accountID == "" {
				accountID = "anonymous"
			}

			mu.Lock()
			now := time.Now()
			al, ok := limiters[accountID]
			if !ok {
				al = &accountLimiter{limiter: rate.NewLimiter(limit, burst)}
				limiters[accountID] = al
				cleanup(now)
			}
			al.lastSeen = now
			allowed := al.limiter.Allow()
			mu.Unlock()

			if !allowed {
				requestID, _ := c.Get("request_id").(string)
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:     "rate_limited",
					Message:   "Too many generation requests, slow down",
					RequestID: requestID,
					Timestamp: now,
				})
			}

			return next(c)
		}
	}
}
