package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newLimiterTest(t *testing.T, limit int64, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRateLimiter(client, limit, window, logger), mr
}

func doRequest(limiter *RateLimiter, remoteAddr string) *httptest.ResponseRecorder {
	handler := limiter.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/books-stock/pagination", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	limiter, _ := newLimiterTest(t, 2, time.Minute)

	assert.Equal(t, http.StatusOK, doRequest(limiter, "10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, doRequest(limiter, "10.0.0.1:2222").Code)
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	limiter, _ := newLimiterTest(t, 2, time.Minute)

	doRequest(limiter, "10.0.0.1:1111")
	doRequest(limiter, "10.0.0.1:1111")
	rec := doRequest(limiter, "10.0.0.1:1111")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "too many requests")
}

func TestRateLimiter_PerClientBudget(t *testing.T) {
	limiter, _ := newLimiterTest(t, 1, time.Minute)

	assert.Equal(t, http.StatusOK, doRequest(limiter, "10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, doRequest(limiter, "10.0.0.2:1111").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(limiter, "10.0.0.1:3333").Code)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	limiter, mr := newLimiterTest(t, 1, time.Minute)

	doRequest(limiter, "10.0.0.1:1111")
	assert.Equal(t, http.StatusTooManyRequests, doRequest(limiter, "10.0.0.1:1111").Code)

	mr.FastForward(2 * time.Minute)

	assert.Equal(t, http.StatusOK, doRequest(limiter, "10.0.0.1:1111").Code)
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	limiter, mr := newLimiterTest(t, 1, time.Minute)
	mr.Close()

	assert.Equal(t, http.StatusOK, doRequest(limiter, "10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, doRequest(limiter, "10.0.0.1:1111").Code)
}
