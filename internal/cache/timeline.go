package cache

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Entry is a fully rendered global-timeline page.
type Entry struct {
	Status      int
	ContentType string
	Body        []byte
}

// Timeline caches rendered global-view pages keyed by page number.
// Expiry is measured from population, never from last access, and there
// is no invalidation path: a new post becomes visible when the entry
// expires. Losing the cache is always safe.
type Timeline struct {
	pages *gocache.Cache
}

func NewTimeline(ttl time.Duration) *Timeline {
	return &Timeline{pages: gocache.New(ttl, 2*ttl)}
}

func (t *Timeline) Get(page int) (Entry, bool) {
	v, ok := t.pages.Get(strconv.Itoa(page))
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

// Set overwrites unconditionally; concurrent misses recomputing the same
// key resolve as last writer wins.
func (t *Timeline) Set(page int, e Entry) {
	t.pages.SetDefault(strconv.Itoa(page), e)
}
