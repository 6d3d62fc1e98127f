package post

import (
	"time"

	"github.com/bornebyte/Network/internal/user"
)

type Post struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	AuthorID     string    `json:"author_id" gorm:"index"`
	Author       user.User `json:"-" gorm:"foreignKey:AuthorID"`
	ContentText  string    `json:"content_text" gorm:"type:text"`
	ImageURL     string    `json:"image_url"`
	CommentCount int64     `json:"comment_count" gorm:"default:0"`
}

func (Post) TableName() string { return "posts" }

// Like is one entry of a post's liker set. The pair index makes adding
// the same liker twice a no-op.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_liker_pair"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_liker_pair"`
}

func (Like) TableName() string { return "post_likers" }

// Save is one entry of a post's saver set.
type Save struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_saver_pair"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_saver_pair"`
}

func (Save) TableName() string { return "post_savers" }

// Response is the serialized form of a post, including the viewer's
// relationship to it.
type Response struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Author       user.PublicInfo `json:"author"`
	ContentText  string          `json:"content_text"`
	ImageURL     string          `json:"image_url"`
	CommentCount int64           `json:"comment_count"`
	LikeCount    int64           `json:"like_count"`
	IsLiked      bool            `json:"is_liked"`
	IsSaved      bool            `json:"is_saved"`
}
