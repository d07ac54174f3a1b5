package follow

import (
	"time"
)

// Follow is a directed edge: FollowerID receives AuthorID's posts in the
// following timeline. The composite unique index is what makes concurrent
// duplicate follows safe; there is no application-level existence check.
type Follow struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	FollowerID string `gorm:"type:uuid;index;uniqueIndex:idx_follows_edge"`
	AuthorID   string `gorm:"type:uuid;index;uniqueIndex:idx_follows_edge"`
}
