package follow

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bornebyte/Network/internal/database"
)

// RecordFor returns the Follower record of a target user.
// gorm.ErrRecordNotFound passes through when no one ever followed them.
func RecordFor(targetUserID string) (Follower, error) {
	var rec Follower
	err := database.DB.Where("user_id = ?", targetUserID).First(&rec).Error
	return rec, err
}

// GetOrCreateRecord lazily creates the Follower record of a target user.
func GetOrCreateRecord(targetUserID string) (Follower, error) {
	var rec Follower
	err := database.DB.
		Where(Follower{UserID: targetUserID}).
		Attrs(Follower{ID: uuid.New().String()}).
		FirstOrCreate(&rec).Error
	return rec, err
}

// AddMember puts a user into a follower set. Idempotent.
func AddMember(followerID, userID string) error {
	m := Member{ID: uuid.New().String(), FollowerID: followerID, UserID: userID}
	return database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error
}

// RemoveMember takes a user out of a follower set. Removing an absent
// membership is a no-op, not an error.
func RemoveMember(followerID, userID string) error {
	return database.DB.
		Where("follower_id = ? AND user_id = ?", followerID, userID).
		Delete(&Member{}).Error
}

// IsFollowing reports whether follower currently follows the target.
func IsFollowing(followerUserID, targetUserID string) (bool, error) {
	var count int64
	err := database.DB.Table("follower_members").
		Joins("JOIN followers ON followers.id = follower_members.follower_id").
		Where("followers.user_id = ? AND follower_members.user_id = ?", targetUserID, followerUserID).
		Count(&count).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

// FollowerCount counts the users following the target.
func FollowerCount(targetUserID string) (int64, error) {
	var count int64
	err := database.DB.Table("follower_members").
		Joins("JOIN followers ON followers.id = follower_members.follower_id").
		Where("followers.user_id = ?", targetUserID).
		Count(&count).Error
	return count, err
}

// FollowingCount counts how many users the given user follows.
func FollowingCount(userID string) (int64, error) {
	var count int64
	err := database.DB.Model(&Member{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// FollowedUserIDs lists the ids of every user the given user follows.
func FollowedUserIDs(userID string) ([]string, error) {
	var ids []string
	err := database.DB.Table("followers").
		Select("followers.user_id").
		Joins("JOIN follower_members ON follower_members.follower_id = followers.id").
		Where("follower_members.user_id = ?", userID).
		Scan(&ids).Error
	return ids, err
}
