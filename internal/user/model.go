package user

import "time"

// User mirrors the identity provider's users table. The backend never
// creates rows here; it only resolves usernames for profile timelines.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"` // UUID issued by the identity provider
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username" gorm:"uniqueIndex"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
}
