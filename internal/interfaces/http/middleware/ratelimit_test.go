package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("window resets", func(t *testing.T) {
		l := NewMemoryLimiter(2, time.Minute)
		defer l.Stop()
		clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return clock }

		for i, want := range []bool{true, true, false} {
			q, err := l.Take(ctx, "ip:10.0.0.1")
			require.NoError(t, err)
			assert.Equal(t, want, q.Allowed, "request %d", i+1)
		}

		q, _ := l.Take(ctx, "ip:10.0.0.1")
		assert.Equal(t, 0, q.Remaining)
		assert.Equal(t, time.Minute, q.RetryAfter)

		clock = clock.Add(61 * time.Second)
		q, _ = l.Take(ctx, "ip:10.0.0.1")
		assert.True(t, q.Allowed)
		assert.Equal(t, 1, q.Remaining)
	})

	t.Run("keys are independent", func(t *testing.T) {
		l := NewMemoryLimiter(1, time.Minute)
		defer l.Stop()

		q, _ := l.Take(ctx, "auth:a")
		assert.True(t, q.Allowed)
		q, _ = l.Take(ctx, "auth:a")
		assert.False(t, q.Allowed)
		q, _ = l.Take(ctx, "auth:b")
		assert.True(t, q.Allowed)
	})

	t.Run("concurrent takes never exceed the limit", func(t *testing.T) {
		l := NewMemoryLimiter(40, time.Minute)
		defer l.Stop()

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if q, _ := l.Take(ctx, "shared"); q.Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 40, allowed)
	})

	t.Run("stop twice", func(t *testing.T) {
		l := NewMemoryLimiter(1, time.Minute)
		l.Stop()
		l.Stop()
	})
}

func TestRedisLimiter(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLimiter(client, "renz:ratelimit:", 3, time.Minute)

	for i := 0; i < 3; i++ {
		q, err := l.Take(ctx, "auth:10.0.0.9")
		require.NoError(t, err)
		assert.True(t, q.Allowed)
		assert.Equal(t, 2-i, q.Remaining)
	}
	q, err := l.Take(ctx, "auth:10.0.0.9")
	require.NoError(t, err)
	assert.False(t, q.Allowed)
	assert.Greater(t, q.RetryAfter, time.Duration(0))

	assert.True(t, mr.Exists("renz:ratelimit:auth:10.0.0.9"))
	assert.Equal(t, time.Minute, mr.TTL("renz:ratelimit:auth:10.0.0.9"))

	mr.FastForward(time.Minute)
	q, err = l.Take(ctx, "auth:10.0.0.9")
	require.NoError(t, err)
	assert.True(t, q.Allowed)

	t.Run("redis down", func(t *testing.T) {
		mr.Close()
		_, err := l.Take(ctx, "auth:10.0.0.9")
		assert.Error(t, err)
	})
}

type failingLimiter struct{}

func (failingLimiter) Take(context.Context, string) (Quota, error) {
	return Quota{}, errors.New("connection refused")
}

func TestAuthRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func(l Limiter) *gin.Engine {
		r := gin.New()
		r.POST("/api/v1/auth/login", AuthRateLimit(l), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
		r.GET("/api/v1/catalog/products", RateLimit(l), func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		return r
	}
	send := func(r *gin.Engine, method, path, addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("quota headers", func(t *testing.T) {
		l := NewMemoryLimiter(5, time.Minute)
		defer l.Stop()

		w := send(newEngine(l), http.MethodPost, "/api/v1/auth/login", "192.168.1.100:1234")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("429 with retry-after", func(t *testing.T) {
		l := NewMemoryLimiter(1, time.Minute)
		defer l.Stop()
		r := newEngine(l)

		assert.Equal(t, http.StatusOK, send(r, http.MethodPost, "/api/v1/auth/login", "192.168.1.100:1234").Code)
		w := send(r, http.MethodPost, "/api/v1/auth/login", "192.168.1.100:5678")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
		assert.Contains(t, w.Body.String(), "Too many authentication attempts")

		// other clients and the ip-scoped bucket are untouched
		assert.Equal(t, http.StatusOK, send(r, http.MethodPost, "/api/v1/auth/login", "192.168.1.101:1234").Code)
		assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/api/v1/catalog/products", "192.168.1.100:1234").Code)
	})

	t.Run("limiter failure lets requests through", func(t *testing.T) {
		w := send(newEngine(failingLimiter{}), http.MethodPost, "/api/v1/auth/login", "192.168.1.100:1234")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	})
}

func TestRateLimitByKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewMemoryLimiter(1, time.Minute)
	defer l.Stop()

	r := gin.New()
	r.Use(RateLimitByKey(l, func(c *gin.Context) string { return "newsletter:" + c.Query("email") }, "slow down"))
	r.POST("/subscribe", func(c *gin.Context) { c.Status(http.StatusCreated) })

	do := func(email string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/subscribe?email="+email, nil))
		return w.Code
	}
	assert.Equal(t, http.StatusCreated, do("a@renz.in"))
	assert.Equal(t, http.StatusTooManyRequests, do("a@renz.in"))
	assert.Equal(t, http.StatusCreated, do("b@renz.in"))
}
