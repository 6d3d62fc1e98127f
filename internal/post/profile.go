package post

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bornebyte/Network/internal/follow"
	"github.com/bornebyte/Network/internal/logs"
	"github.com/bornebyte/Network/internal/user"
)

// Profile GET /api/profile/:username
func Profile(c *gin.Context) {
	route := c.FullPath()
	viewerID := c.GetString("user_id")
	username := c.Param("username")

	target, err := user.ByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	pg, err := PostsByAuthor(target.ID, pageParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		logs.LogJSON("ERROR", "Error loading profile posts", logs.Fields{
			"error":    err.Error(),
			"route":    route,
			"username": username,
		})
		return
	}

	followerCount, err := follow.FollowerCount(target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading profile"})
		logs.LogJSON("ERROR", "Error counting followers", logs.Fields{
			"error":    err.Error(),
			"route":    route,
			"username": username,
		})
		return
	}
	followingCount, err := follow.FollowingCount(target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading profile"})
		logs.LogJSON("ERROR", "Error counting following", logs.Fields{
			"error":    err.Error(),
			"route":    route,
			"username": username,
		})
		return
	}

	isFollower := false
	if viewerID != "" && viewerID != target.ID {
		isFollower, err = follow.IsFollowing(viewerID, target.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading profile"})
			logs.LogJSON("ERROR", "Error checking follow status", logs.Fields{
				"error":    err.Error(),
				"route":    route,
				"username": username,
			})
			return
		}
	}

	payload := feedPayload(pg, viewerID)
	payload["profile"] = gin.H{
		"id":              target.ID,
		"username":        target.Username,
		"firstname":       target.FirstName,
		"lastname":        target.LastName,
		"avatar_url":      target.AvatarURL,
		"cover_url":       target.CoverURL,
		"posts_count":     pg.Total,
		"followers_count": followerCount,
		"following_count": followingCount,
		"is_follower":     isFollower,
	}
	payload["suggestions"] = suggestionsFor(viewerID)
	c.JSON(http.StatusOK, payload)
}
