package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(rl *RateLimiter, userID uuid.UUID, perRecipe bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	setUser := func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		c.Next()
	}
	mw := rl.RateLimitMiddleware()
	if perRecipe {
		mw = rl.PerRecipeRateLimitMiddleware()
	}
	router.POST("/recipes/:id", setUser, mw, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func post(router *gin.Engine, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, nil))
	return rr
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	rl := NewRateLimiter(client, RateLimitConfig{Window: time.Hour, Limit: 2, KeyPrefix: "test"}, nil)
	router := limitedRouter(rl, uuid.New(), false)

	rr := post(router, "/recipes/a")
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, post(router, "/recipes/b").Code)

	rr = post(router, "/recipes/c")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))

	// other users have their own window
	other := limitedRouter(rl, uuid.New(), false)
	assert.Equal(t, http.StatusNoContent, post(other, "/recipes/a").Code)
}

func TestPerRecipeRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	rl := NewRecipeModificationRateLimiter(client, 1, nil)
	router := limitedRouter(rl, uuid.New(), true)

	assert.Equal(t, http.StatusNoContent, post(router, "/recipes/a").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(router, "/recipes/a").Code)
	assert.Equal(t, http.StatusNoContent, post(router, "/recipes/b").Code)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	rl := NewRecipeCreationRateLimiter(client, 1, nil)
	router := limitedRouter(rl, uuid.New(), false)
	mr.Close()

	for i := 0; i < 3; i++ {
		rr := post(router, "/recipes/a")
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "rate limit check failed", rr.Header().Get("X-RateLimit-Error"))
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	router := limitedRouter(NewRecipeCreationRateLimiter(nil, 1, nil), uuid.New(), false)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, post(router, "/recipes/a").Code)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	router = limitedRouter(NewRecipeCreationRateLimiter(client, 0, nil), uuid.New(), false)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, post(router, "/recipes/a").Code)
	}
}
