package group

import "time"

type Group struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:50"`
	Title       string    `json:"title" gorm:"size:200"`
	Description string    `json:"description" gorm:"size:400"`
}
