package limits

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	lvtest "github.com/gabrielmiguelok/golivefolio/pkg/testing"
)

func TestTokenBucket_BurstThenRefill(t *testing.T) {
	clock := lvtest.NewManualClock(lvtest.Epoch)
	tb := NewTokenBucket(2, 3, WithClock(clock))

	for i := 0; i < 3; i++ {
		assert.True(t, tb.Allow("a"), "request %d", i)
	}
	assert.False(t, tb.Allow("a"))
	assert.True(t, tb.Allow("b"), "keys are independent")

	clock.Advance(500 * time.Millisecond)
	assert.True(t, tb.Allow("a"))
	assert.False(t, tb.Allow("a"))

	clock.Advance(time.Hour)
	assert.True(t, tb.AllowN("a", 3))
	assert.False(t, tb.AllowN("a", 1))
}

func TestTokenBucket_Sweep(t *testing.T) {
	clock := lvtest.NewManualClock(lvtest.Epoch)
	tb := NewTokenBucket(1, 1, WithClock(clock))

	tb.Allow("old")
	clock.Advance(2 * time.Minute)
	tb.Allow("new")

	assert.Equal(t, 1, tb.Sweep(time.Minute))
	assert.Equal(t, 1, tb.Len())
}

func TestMiddleware(t *testing.T) {
	clock := lvtest.NewManualClock(lvtest.Epoch)
	tb := NewTokenBucket(1, 1, WithClock(clock))
	h := Middleware(tb, CookieKeyFunc("visitor"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(visitor string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if visitor != "" {
			req.AddCookie(&http.Cookie{Name: "visitor", Value: visitor})
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do("v1"))
	assert.Equal(t, http.StatusTooManyRequests, do("v1"))
	assert.Equal(t, http.StatusNoContent, do("v2"))
	assert.Equal(t, http.StatusNoContent, do(""))
	assert.Equal(t, http.StatusTooManyRequests, do(""))
}
