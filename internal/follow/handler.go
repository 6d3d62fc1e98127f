package follow

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bornebyte/Network/internal/database"
	"github.com/bornebyte/Network/internal/logs"
)

func targetIDByUsername(username string) (string, error) {
	var target struct {
		ID string
	}
	err := database.DB.Table("users").
		Select("id").
		Where("username = ?", username).
		Take(&target).Error
	return target.ID, err
}

// FollowUser PUT /api/users/:username/follow
func FollowUser(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	username := c.Param("username")

	targetID, err := targetIDByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Error resolving follow target", logs.Fields{
			"error":    err.Error(),
			"route":    route,
			"userID":   userID,
			"username": username,
		})
		return
	}

	rec, err := GetOrCreateRecord(targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding follow"})
		logs.LogJSON("ERROR", "Error creating follower record", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	if err := AddMember(rec.ID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding follow"})
		logs.LogJSON("ERROR", "Error adding follower", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.Status(http.StatusNoContent)
	logs.LogJSON("INFO", "Followed user", logs.Fields{
		"route":    route,
		"userID":   userID,
		"username": username,
	})
}

// UnfollowUser PUT /api/users/:username/unfollow
func UnfollowUser(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	username := c.Param("username")

	targetID, err := targetIDByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Error resolving unfollow target", logs.Fields{
			"error":    err.Error(),
			"route":    route,
			"userID":   userID,
			"username": username,
		})
		return
	}

	rec, err := RecordFor(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Follower relationship not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Error loading follower record", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	if err := RemoveMember(rec.ID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing follow"})
		logs.LogJSON("ERROR", "Error removing follower", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.Status(http.StatusNoContent)
	logs.LogJSON("INFO", "Unfollowed user", logs.Fields{
		"route":    route,
		"userID":   userID,
		"username": username,
	})
}
