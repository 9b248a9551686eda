// internal/server/middleware.go
package server

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"jobswipe-api/internal/auth"
	"jobswipe-api/internal/common/config"
	"jobswipe-api/internal/common/logger"
	"jobswipe-api/internal/common/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	contextKeyRequestID = "request_id"
	contextKeyUserEmail = "user_email"
	headerRequestID     = "X-Request-ID"
)

// RequestID reuses the caller's X-Request-ID or mints one, and echoes it on
// the response so log lines can be correlated across services.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(contextKeyRequestID, requestID)
		c.Header(headerRequestID, requestID)
		c.Next()
	}
}

// RequestLogger logs one structured line per request and records the HTTP
// metrics. Route labels use the gin route template, not the raw path, to
// keep metric cardinality bounded.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, route).Observe(duration.Seconds())

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"durationMs": duration.Milliseconds(),
			"clientIp":   c.ClientIP(),
		}
		if requestID, exists := c.Get(contextKeyRequestID); exists {
			fields["requestId"] = requestID
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request failed", fields)
		case status >= http.StatusBadRequest:
			log.Warn("request rejected", fields)
		default:
			log.Info("request completed", fields)
		}
	}
}

// clientLimiter tracks a token bucket per client IP. Buckets are pruned when
// idle for longer than limiterIdleTTL to bound memory.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rps      rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const limiterIdleTTL = 10 * time.Minute

func newClientLimiter(rps float64, burst int) *clientLimiter {
	return &clientLimiter{
		limiters: make(map[string]*limiterEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *clientLimiter) allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.limiters[clientIP]
	if !ok {
		l.prune(now)
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[clientIP] = entry
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}

func (l *clientLimiter) prune(now time.Time) {
	for ip, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.limiters, ip)
		}
	}
}

// RateLimit throttles requests per client IP using a token bucket.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	limiter := newClientLimiter(cfg.RequestsPerSecond, cfg.Burst)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Too many requests",
			})
			return
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a valid Bearer access token and stores
// the authenticated email in the request context.
func RequireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Missing or malformed Authorization header",
			})
			return
		}

		claims, err := authService.ParseToken(token, auth.TokenTypeAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
			})
			return
		}

		c.Set(contextKeyUserEmail, claims.Email)
		c.Next()
	}
}

// OptionalAuth attaches the caller identity when a valid Bearer token is
// present, and lets the request through anonymously otherwise.
func OptionalAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := authService.ParseToken(token, auth.TokenTypeAccess); err == nil {
				c.Set(contextKeyUserEmail, claims.Email)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
