package post

import (
	"time"
	"unicode/utf8"

	"github.com/Kreyvi/hw05-final/internal/group"
	"github.com/Kreyvi/hw05-final/internal/user"
)

const summaryLen = 100

type Post struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time    `json:"created_at" gorm:"index"`
	AuthorID  string       `json:"author_id" gorm:"type:uuid;index"`
	Author    user.User    `json:"author" gorm:"foreignKey:AuthorID"`
	GroupID   *uint        `json:"group_id" gorm:"index"`
	Group     *group.Group `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Text      string       `json:"text"`
	ImageURL  string       `json:"image_url,omitempty"`
}

// Summary returns the text truncated for list views.
func (p *Post) Summary() string {
	if utf8.RuneCountInString(p.Text) <= summaryLen {
		return p.Text
	}
	return string([]rune(p.Text)[:summaryLen]) + "..."
}

// Sequence is a lazy, restartable ordered view over posts. Every call
// re-runs the underlying query, so a read after a store write sees the
// write without any refresh bookkeeping.
type Sequence interface {
	Count() (int64, error)
	Slice(offset, limit int) ([]Post, error)
}
