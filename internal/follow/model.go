package follow

import (
	"time"
)

// Follower is the per-target record holding that user's follower set.
// It is created lazily the first time somebody follows the target.
type Follower struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex"`
}

func (Follower) TableName() string { return "followers" }

// Member is one entry of a follower set. The pair index keeps the
// set semantics: adding the same follower twice is a no-op.
type Member struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	FollowerID string    `json:"follower_id" gorm:"index;uniqueIndex:idx_member_pair"`
	UserID     string    `json:"user_id" gorm:"uniqueIndex:idx_member_pair"`
}

func (Member) TableName() string { return "follower_members" }
