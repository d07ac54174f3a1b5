package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TimelineCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "timeline_cache_hits_total",
		Help: "Global timeline pages served from the TTL cache.",
	})

	TimelineCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "timeline_cache_misses_total",
		Help: "Global timeline pages composed because no cache entry was live.",
	})

	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "posts_created_total",
		Help: "Posts accepted by the post store.",
	})

	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_requests_total",
		Help: "Feed requests by view.",
	}, []string{"view"})
)
