package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arquitetura-app/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed calls per window.
	defaultMaxAttempts = 2
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
	// sweepThreshold is the number of tracked callers above which expired
	// windows are dropped on the next call.
	sweepThreshold = 1024
)

// window counts the calls of one caller in a fixed time window.
type window struct {
	calls   int
	resetAt time.Time
}

// RateLimiter throttles expensive operator endpoints per caller, a caller
// being the client IP together with the acting user.
type RateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	maxAttempts int
	length      time.Duration
	disabled    bool
	now         func() time.Time
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
// A non-positive maxAttempts disables limiting.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:     make(map[string]*window),
		maxAttempts: maxAttempts,
		length:      windowDuration,
		disabled:    maxAttempts <= 0,
		now:         time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// Rejected calls get a 429 with a Retry-After header in seconds.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.disabled {
			c.Next()
			return
		}

		allowed, retryAfter := rl.allow(callerKey(c))
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  dto.ErrCodeRateLimited,
			})
			return
		}

		c.Next()
	}
}

func callerKey(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = c.Request.RemoteAddr
	}
	return ip + "|" + GetActorFromContext(c)
}

// allow records a call and reports whether it fits the caller's window, and
// if not how long until the window resets.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if len(rl.windows) > sweepThreshold {
		rl.sweep(now)
	}

	w, ok := rl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		rl.windows[key] = &window{calls: 1, resetAt: now.Add(rl.length)}
		return true, 0
	}

	if w.calls < rl.maxAttempts {
		w.calls++
		return true, 0
	}
	return false, w.resetAt.Sub(now)
}

// Reset forgets every caller.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.windows = make(map[string]*window)
}

// sweep drops expired windows. Callers must hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}
