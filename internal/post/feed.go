package post

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bornebyte/Network/internal/follow"
	"github.com/bornebyte/Network/internal/logs"
	"github.com/bornebyte/Network/internal/user"
)

// pageParam reads the requested page number; anything missing or
// unparseable falls back to page 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}

func feedPayload(pg Page, viewerID string) gin.H {
	return gin.H{
		"posts": serializeAll(pg.Posts, viewerID),
		"page": gin.H{
			"number":       pg.Number,
			"num_pages":    pg.NumPages,
			"total":        pg.Total,
			"has_next":     pg.HasNext,
			"has_previous": pg.HasPrevious,
		},
	}
}

// suggestionsFor returns follow suggestions for logged-in viewers and
// an empty list for anonymous ones.
func suggestionsFor(viewerID string) []user.PublicInfo {
	if viewerID == "" {
		return []user.PublicInfo{}
	}
	suggestions, err := user.Suggestions(viewerID)
	if err != nil {
		logs.LogJSON("WARN", "Error loading suggestions", logs.Fields{
			"error":  err.Error(),
			"userID": viewerID,
		})
		return []user.PublicInfo{}
	}
	return suggestions
}

// Index GET /api/posts
func Index(c *gin.Context) {
	route := c.FullPath()
	viewerID := c.GetString("user_id")

	pg, err := AllPosts(pageParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		logs.LogJSON("ERROR", "Error loading feed", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": viewerID,
		})
		return
	}

	payload := feedPayload(pg, viewerID)
	payload["suggestions"] = suggestionsFor(viewerID)
	c.JSON(http.StatusOK, payload)
}

// FollowingFeed GET /api/following
func FollowingFeed(c *gin.Context) {
	route := c.FullPath()
	viewerID := c.GetString("user_id")

	authorIDs, err := follow.FollowedUserIDs(viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		logs.LogJSON("ERROR", "Error loading followed authors", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": viewerID,
		})
		return
	}

	pg, err := PostsByAuthors(authorIDs, pageParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		logs.LogJSON("ERROR", "Error loading following feed", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": viewerID,
		})
		return
	}

	payload := feedPayload(pg, viewerID)
	payload["suggestions"] = suggestionsFor(viewerID)
	c.JSON(http.StatusOK, payload)
}

// SavedFeed GET /api/saved
func SavedFeed(c *gin.Context) {
	route := c.FullPath()
	viewerID := c.GetString("user_id")

	pg, err := SavedPosts(viewerID, pageParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		logs.LogJSON("ERROR", "Error loading saved feed", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": viewerID,
		})
		return
	}

	payload := feedPayload(pg, viewerID)
	payload["suggestions"] = suggestionsFor(viewerID)
	c.JSON(http.StatusOK, payload)
}
