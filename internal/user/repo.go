package user

import (
	"github.com/bornebyte/Network/internal/database"
)

func ExistsByEmail(email string) bool {
	var count int64
	database.DB.Model(&User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

func ExistsByUsername(username string) bool {
	var count int64
	database.DB.Model(&User{}).Where("username = ?", username).Count(&count)
	return count > 0
}

func ByUsername(username string) (User, error) {
	var u User
	err := database.DB.Where("username = ?", username).First(&u).Error
	return u, err
}

func ByID(id string) (User, error) {
	var u User
	err := database.DB.First(&u, "id = ?", id).Error
	return u, err
}

// Suggestions picks up to six users the viewer does not follow yet,
// excluding the viewer. Unspecified order, random sample.
func Suggestions(viewerID string) ([]PublicInfo, error) {
	followed := database.DB.Table("followers").
		Select("followers.user_id").
		Joins("JOIN follower_members ON follower_members.follower_id = followers.id").
		Where("follower_members.user_id = ?", viewerID)

	var users []User
	err := database.DB.
		Where("id NOT IN (?)", followed).
		Where("id <> ?", viewerID).
		Order("RANDOM()").
		Limit(6).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	suggestions := make([]PublicInfo, 0, len(users))
	for _, u := range users {
		suggestions = append(suggestions, u.Public())
	}
	return suggestions, nil
}
