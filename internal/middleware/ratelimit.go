package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DefaultLimiterIdleTTL is how long a client's limiter is kept after its last request.
const DefaultLimiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// IPRateLimiter manages per-IP rate limiting. Limiters idle for longer than
// the idle TTL are dropped by a sweep that runs at most once per TTL, so the
// map is bounded by the clients seen within roughly two TTLs.
type IPRateLimiter struct {
	limiters  sync.Map
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep atomic.Int64
	now       func() time.Time
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		rate:    r,
		burst:   burst,
		idleTTL: idleTTLFor(r, burst),
		now:     time.Now,
	}
}

// idleTTLFor never evicts a limiter before its bucket has refilled, so an
// eviction cannot hand a client a fresh burst early.
func idleTTLFor(r rate.Limit, burst int) time.Duration {
	ttl := DefaultLimiterIdleTTL
	if r > 0 && r != rate.Inf {
		refill := time.Duration(float64(burst) / float64(r) * float64(time.Second))
		if refill > ttl {
			ttl = refill
		}
	}
	return ttl
}

// GetLimiter returns the rate limiter for a given IP
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	now := l.now()
	l.sweep(now)

	v, ok := l.limiters.Load(ip)
	if !ok {
		v, _ = l.limiters.LoadOrStore(ip, &ipLimiter{limiter: rate.NewLimiter(l.rate, l.burst)})
	}
	entry := v.(*ipLimiter)
	entry.lastSeen.Store(now.UnixNano())
	return entry.limiter
}

// Len returns the number of tracked clients.
func (l *IPRateLimiter) Len() int {
	n := 0
	l.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// sweep drops idle limiters, at most once per idle TTL.
func (l *IPRateLimiter) sweep(now time.Time) {
	last := l.lastSweep.Load()
	if now.UnixNano()-last < int64(l.idleTTL) {
		return
	}
	if !l.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	cutoff := now.Add(-l.idleTTL).UnixNano()
	l.limiters.Range(func(key, value any) bool {
		if value.(*ipLimiter).lastSeen.Load() < cutoff {
			l.limiters.Delete(key)
		}
		return true
	})
}

// retryAfterSeconds is how long a client should wait for one token.
func (l *IPRateLimiter) retryAfterSeconds() int {
	if l.rate <= 0 {
		return 1
	}
	return int(math.Ceil(1 / float64(l.rate)))
}

// RateLimitMiddleware rejects clients exceeding their per-IP budget with 429
// and a Retry-After header.
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			c.Header("Retry-After", strconv.Itoa(limiter.retryAfterSeconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
				"code":  "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}
