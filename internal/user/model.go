package user

import "time"

type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username" gorm:"uniqueIndex"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstname"`
	LastName     string    `json:"lastname"`
	AvatarURL    string    `json:"avatar_url"`
	CoverURL     string    `json:"cover_url"`
	PasswordHash string    `json:"-"`
}

// PublicInfo is the subset of a profile embedded in posts, comments
// and suggestion lists.
type PublicInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

func (u User) Public() PublicInfo {
	return PublicInfo{
		ID:        u.ID,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}
