package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// originMatcher decides whether a browser origin may call the API. Exact
// origins and wildcard-suffix patterns ("https://*.cartwise.dev") from the
// config are split once at construction.
type originMatcher struct {
	exact    map[string]bool
	prefixes []string
}

func newOriginMatcher(allowedOrigins []string) *originMatcher {
	m := &originMatcher{exact: make(map[string]bool, len(allowedOrigins))}
	for _, allowed := range allowedOrigins {
		if prefix, ok := strings.CutSuffix(allowed, "*"); ok {
			m.prefixes = append(m.prefixes, prefix)
			continue
		}
		m.exact[allowed] = true
	}
	return m
}

func (m *originMatcher) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if m.exact[origin] {
		return true
	}
	for _, prefix := range m.prefixes {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}

// CORSMiddleware handles CORS for browser clients
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	matcher := newOriginMatcher(allowedOrigins)

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if matcher.allows(origin) {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Credentials", "true")
			header.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			header.Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// LoggerMiddleware logs requests (simple version for now)
func LoggerMiddleware() gin.HandlerFunc {
	return gin.Logger()
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.Recovery()
}
