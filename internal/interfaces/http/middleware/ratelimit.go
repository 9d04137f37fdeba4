package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/renztrending/backend/internal/interfaces/http/dto"
)

// Quota is the outcome of one Take call
type Quota struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts requests per key in fixed windows
type Limiter interface {
	Take(ctx context.Context, key string) (Quota, error)
}

// MemoryLimiter keeps windows in process memory. It only limits a single
// instance; use RedisLimiter when the API runs replicated.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*memWindow

	stop     chan struct{}
	stopOnce sync.Once
}

type memWindow struct {
	start time.Time
	count int
}

// NewMemoryLimiter starts a limiter allowing limit requests per window per key
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		windows: make(map[string]*memWindow),
		stop:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

func (l *MemoryLimiter) sweep() {
	ticker := time.NewTicker(2 * l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			cutoff := l.now().Add(-l.window)
			for key, w := range l.windows {
				if w.start.Before(cutoff) {
					delete(l.windows, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// Stop ends the sweeper; safe to call more than once
func (l *MemoryLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Take implements Limiter
func (l *MemoryLimiter) Take(_ context.Context, key string) (Quota, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		w = &memWindow{start: now}
		l.windows[key] = w
	}
	w.count++
	return quota(l.limit, w.count, w.start.Add(l.window).Sub(now)), nil
}

// RedisLimiter shares windows between API instances through Redis
type RedisLimiter struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
}

// NewRedisLimiter creates a Redis-backed limiter; keys are stored as prefix+key
func NewRedisLimiter(client redis.UniversalClient, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

// Take implements Limiter
func (l *RedisLimiter) Take(ctx context.Context, key string) (Quota, error) {
	k := l.prefix + key
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		// SET NX starts the window; INCR keeps its TTL
		p.SetNX(ctx, k, 0, l.window)
		incr = p.Incr(ctx, k)
		ttl = p.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return Quota{}, err
	}
	left := ttl.Val()
	if left <= 0 {
		left = l.window
	}
	return quota(l.limit, int(incr.Val()), left), nil
}

func quota(limit, count int, left time.Duration) Quota {
	q := Quota{Allowed: count <= limit, Limit: limit, Remaining: limit - count}
	if q.Remaining < 0 {
		q.Remaining = 0
	}
	if !q.Allowed {
		q.RetryAfter = left
	}
	return q
}

// RateLimit limits requests per client IP
func RateLimit(l Limiter) gin.HandlerFunc {
	return RateLimitByKey(l, func(c *gin.Context) string { return "ip:" + c.ClientIP() },
		"Too many requests. Please try again later.")
}

// AuthRateLimit guards login, register and refresh against credential stuffing
func AuthRateLimit(l Limiter) gin.HandlerFunc {
	return RateLimitByKey(l, func(c *gin.Context) string { return "auth:" + c.ClientIP() },
		"Too many authentication attempts. Please try again later.")
}

// RateLimitByKey rejects requests over the quota of keyFunc's key with 429.
// Limiter failures let the request through.
func RateLimitByKey(l Limiter, keyFunc func(*gin.Context) string, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := l.Take(c.Request.Context(), keyFunc(c))
		if err != nil {
			_ = c.Error(err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(q.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(q.Remaining))
		if !q.Allowed {
			secs := int((q.RetryAfter + time.Second - 1) / time.Second)
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited, message, c.GetString(RequestIDContextKey)))
			return
		}
		c.Next()
	}
}
