package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Kreyvi/hw05-final/internal/cache"
)

// countingRouter serves a body that changes on every underlying handler
// invocation, so cached responses are distinguishable from fresh ones.
func countingRouter(timeline *cache.Timeline) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)

	calls := 0
	r := gin.New()
	r.GET("/", CachedTimeline(timeline), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"render": calls})
	})
	return r, &calls
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestCachedTimelineServesStaleWithinTTL(t *testing.T) {
	r, calls := countingRouter(cache.NewTimeline(time.Minute))

	first := get(r, "/")
	second := get(r, "/")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, *calls)
}

func TestCachedTimelineRecomputesAfterExpiry(t *testing.T) {
	r, calls := countingRouter(cache.NewTimeline(50 * time.Millisecond))

	first := get(r, "/")
	time.Sleep(80 * time.Millisecond)
	second := get(r, "/")

	assert.NotEqual(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 2, *calls)
}

func TestCachedTimelineNormalizesPageKey(t *testing.T) {
	r, calls := countingRouter(cache.NewTimeline(time.Minute))

	// Non-numeric and explicit page 1 share one cache entry.
	get(r, "/?page=abc")
	get(r, "/?page=1")
	get(r, "/")

	assert.Equal(t, 1, *calls)
}

func TestCachedTimelineKeysByPage(t *testing.T) {
	r, calls := countingRouter(cache.NewTimeline(time.Minute))

	get(r, "/?page=1")
	get(r, "/?page=2")

	assert.Equal(t, 2, *calls)
}

func TestCachedTimelineSkipsErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	timeline := cache.NewTimeline(time.Minute)
	calls := 0
	r := gin.New()
	r.GET("/", CachedTimeline(timeline), func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"render": fmt.Sprint(calls)})
	})

	first := get(r, "/")
	second := get(r, "/")
	third := get(r, "/")

	assert.Equal(t, http.StatusInternalServerError, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	// The error was never cached; the OK response was.
	assert.Equal(t, http.StatusOK, third.Code)
	assert.Equal(t, second.Body.String(), third.Body.String())
	assert.Equal(t, 2, calls)
}
