package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestMiddlewareLimitsPerIP(t *testing.T) {
	// One request allowed, no refill within the test.
	limiter := NewIPRateLimiter(rate.Limit(0.001), 1)

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(remoteAddr string) int {
		r := httptest.NewRequest("POST", "/", nil)
		r.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1:1234"))

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, request("10.0.0.2:1234"))
}

func TestGetLimiterReusesBuckets(t *testing.T) {
	limiter := NewIPRateLimiter(1, 5)

	first := limiter.GetLimiter("10.0.0.1")
	second := limiter.GetLimiter("10.0.0.1")
	other := limiter.GetLimiter("10.0.0.2")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}
