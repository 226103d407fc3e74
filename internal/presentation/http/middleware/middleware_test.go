package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/receipt-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, id)
		c.Next()
	}
}

func TestRateLimiter_PerKey(t *testing.T) {
	rl := NewRateLimiter(NewRateLimiterConfig(2, 60))
	t.Cleanup(rl.Stop)

	router := gin.New()
	router.GET("/", rl.Middleware(ByClientIP), func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.2"))
	assert.Equal(t, 2, rl.ActiveKeys())
}

func TestRateLimiter_SkipsEmptyKey(t *testing.T) {
	rl := NewRateLimiter(NewRateLimiterConfig(1, 60))
	t.Cleanup(rl.Stop)

	router := gin.New()
	router.GET("/", rl.Middleware(ByUser), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 0, rl.ActiveKeys())
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, CleanupInterval: time.Hour, EntryTTL: time.Nanosecond})
	t.Cleanup(rl.Stop)

	rl.getLimiter("a")
	time.Sleep(time.Millisecond)
	rl.cleanup()
	assert.Equal(t, 0, rl.ActiveKeys())
}

func TestIdempotency(t *testing.T) {
	store := testutil.NewIdempotencyStore()
	userID := uuid.New()
	calls := 0

	router := gin.New()
	router.POST("/things", withUser(userID), Idempotency(IdempotencyConfig{Repo: store, Log: zap.NewNop()}), func(c *gin.Context) {
		calls++
		switch c.Query("fail") {
		case "server":
			c.JSON(http.StatusInternalServerError, gin.H{"calls": calls})
			return
		case "invalid":
			c.JSON(http.StatusUnprocessableEntity, gin.H{"calls": calls})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"calls": calls})
	})

	post := func(path, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := post("/things", "k1")
	require.Equal(t, http.StatusCreated, first.Code)
	replay := post("/things", "k1")
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), replay.Body.String())
	assert.Equal(t, 1, calls)

	post("/things", "")
	post("/things", "")
	assert.Equal(t, 3, calls)

	post("/things?fail=server", "k2")
	retried := post("/things", "k2")
	assert.Equal(t, http.StatusCreated, retried.Code)
	assert.Empty(t, retried.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 5, calls)

	rejected := post("/things?fail=invalid", "k3")
	require.Equal(t, http.StatusUnprocessableEntity, rejected.Code)
	corrected := post("/things", "k3")
	assert.Equal(t, http.StatusCreated, corrected.Code)
	assert.Empty(t, corrected.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 7, calls)
}
