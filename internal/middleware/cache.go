package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kreyvi/hw05-final/internal/cache"
	"github.com/Kreyvi/hw05-final/internal/feed"
	"github.com/Kreyvi/hw05-final/internal/metrics"
)

// CachedTimeline serves the global timeline from the TTL cache, keyed by
// the normalized page index (?page=abc and ?page=1 share an entry). On a
// miss the downstream response is captured and stored; only 200s are
// cached. Creating a post does not purge entries — staleness up to the
// TTL is the accepted trade-off on this one viewer-independent view.
func CachedTimeline(timeline *cache.Timeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := feed.NormalizePage(c.Query("page"))

		if entry, ok := timeline.Get(page); ok {
			metrics.TimelineCacheHits.Inc()
			c.Data(entry.Status, entry.ContentType, entry.Body)
			c.Abort()
			return
		}
		metrics.TimelineCacheMisses.Inc()

		capture := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = capture
		c.Next()

		if capture.Status() == http.StatusOK {
			timeline.Set(page, cache.Entry{
				Status:      capture.Status(),
				ContentType: capture.Header().Get("Content-Type"),
				Body:        capture.body.Bytes(),
			})
		}
	}
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
