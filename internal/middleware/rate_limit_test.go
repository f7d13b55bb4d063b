package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(rl *RateLimiter, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/recipes", func(c *gin.Context) {
		c.Set(userIDKey, userID)
		c.Next()
	}, rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func TestNilRateLimiterAllowsAll(t *testing.T) {
	var rl *RateLimiter
	r := limitedRouter(rl, uuid.New())

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recipes", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	rl := NewRecipeCreationRateLimiter(client)

	w := httptest.NewRecorder()
	limitedRouter(rl, uuid.New()).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recipes", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping redis test")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRateLimiterEnforcesLimit(t *testing.T) {
	client := redisClient(t)
	rl := NewRateLimiter(client, RateLimitConfig{
		Window:    time.Minute,
		Limit:     2,
		KeyPrefix: "test:" + uuid.NewString(),
		Name:      "test",
	})
	r := limitedRouter(rl, uuid.New())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recipes", nil))
		codes = append(codes, w.Code)
		if i == 0 {
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
		}
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
}

func TestGetRemainingRequests(t *testing.T) {
	client := redisClient(t)
	rl := NewRateLimiter(client, RateLimitConfig{Window: time.Minute, Limit: 5, KeyPrefix: "test:" + uuid.NewString()})
	ctx := context.Background()

	remaining, _, err := rl.GetRemainingRequests(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)

	_, _, _, err = rl.IsAllowed(ctx, "user")
	require.NoError(t, err)
	remaining, _, err = rl.GetRemainingRequests(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, 4, remaining)
}
