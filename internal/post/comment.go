package post

import (
	"time"
)

type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
