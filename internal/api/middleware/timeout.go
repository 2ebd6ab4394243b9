package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Paths that call the LLM and need the long timeout.
var longTimeoutPrefixes = []string{
	"/api/v1/resume/generate",
	"/api/v1/resume/import",
	"/api/v1/cover-letters/generate",
}

// TimeoutConfig returns timeout middleware configuration
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	})
}

// SelectiveTimeoutConfig applies the default timeout everywhere except the
// generation endpoints, which get the long one.
func SelectiveTimeoutConfig(defaultTimeout, longTimeout time.Duration) echo.MiddlewareFunc {
	short := TimeoutConfig(defaultTimeout)
	long := TimeoutConfig(longTimeout)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		shortNext := short(next)
		longNext := long(next)
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, prefix := range longTimeoutPrefixes {
				if strings.HasPrefix(path, prefix) {
					return longNext(c)
				}
			}
			return shortNext(c)
		}
	}
}
