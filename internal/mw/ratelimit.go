package mw

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"seatapp-web/internal/logging"
	"seatapp-web/internal/metrics"
)

// Bounds on how long an idle client's limiter is kept.
const (
	minLimiterIdleTTL = time.Minute
	maxLimiterIdleTTL = 24 * time.Hour
)

// IPRateLimiter stores a rate limiter for each client IP address. Entries
// expire once a client has been idle long enough for its bucket to refill,
// so dropping one never hands out extra tokens.
type IPRateLimiter struct {
	ips *cache.Cache
	mu  sync.Mutex
	r   rate.Limit
	b   int
	ttl time.Duration
}

// NewIPRateLimiter creates a new IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return newIPRateLimiter(r, b, limiterIdleTTL(r, b))
}

func newIPRateLimiter(r rate.Limit, b int, ttl time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		ips: cache.New(ttl, ttl),
		r:   r,
		b:   b,
		ttl: ttl,
	}
}

// limiterIdleTTL is the time an empty bucket takes to refill, clamped.
func limiterIdleTTL(r rate.Limit, b int) time.Duration {
	if r <= 0 {
		return minLimiterIdleTTL
	}
	refill := float64(b) / float64(r)
	if refill >= maxLimiterIdleTTL.Seconds() {
		return maxLimiterIdleTTL
	}
	return max(time.Duration(refill*float64(time.Second)), minLimiterIdleTTL)
}

// GetLimiter returns the rate limiter for an IP address, creating it on
// first use. Every lookup restarts the idle timer.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, found := i.ips.Get(ip)
	if !found {
		limiter = rate.NewLimiter(i.r, i.b)
	}
	i.ips.Set(ip, limiter, i.ttl)
	return limiter.(*rate.Limiter)
}

// Len reports how many client limiters are held, expired ones included
// until the janitor runs.
func (i *IPRateLimiter) Len() int {
	return i.ips.ItemCount()
}

// RateLimiter is a middleware for IP-based rate limiting. A zero rate
// disables it. Rejected requests get a 429 page from reject.
func RateLimiter(r rate.Limit, b int, reject gin.HandlerFunc) gin.HandlerFunc {
	if r <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewIPRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			metrics.RateLimitedRequests.Inc()
			logging.Ctx(c.Request.Context()).Warn().Str("client_ip", c.ClientIP()).Msg("request rate limited")
			if reject == nil {
				c.AbortWithStatus(http.StatusTooManyRequests)
				return
			}
			reject(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
