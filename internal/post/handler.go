package post

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bornebyte/Network/internal/database"
	"github.com/bornebyte/Network/internal/logs"
	"github.com/bornebyte/Network/internal/storage"
)

var validImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".webp": true, ".heic": true,
}

// uploadPostImage stores the form file under field in the posts folder.
// Returns "" when no file was sent.
func uploadPostImage(c *gin.Context, field string) (string, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return "", nil
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !validImageExtensions[ext] {
		return "", fmt.Errorf("invalid file extension")
	}

	filename := fmt.Sprintf("post_%s%s", uuid.New().String(), ext)
	contentType := header.Header.Get("Content-Type")
	url, err := storage.UploadToS3(file, filename, contentType, "posts")
	if err != nil {
		return "", fmt.Errorf("image upload failed")
	}
	return url, nil
}

// CreatePost POST /api/posts
// Multipart form: text plus an optional picture file. A post may carry
// text, an image, or both.
func CreatePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	text := c.PostForm("text")

	imageURL, err := uploadPostImage(c, "picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := Post{
		ID:          uuid.New().String(),
		AuthorID:    userID,
		ContentText: text,
		ImageURL:    imageURL,
	}
	if err := database.DB.Create(&p).Error; err != nil {
		if imageURL != "" {
			if key := storage.ObjectKey(imageURL); key != "" {
				_ = storage.DeleteFromS3(key)
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post"})
		logs.LogJSON("ERROR", "Post creation error", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	database.DB.Preload("Author").First(&p, "id = ?", p.ID)
	c.JSON(http.StatusCreated, gin.H{"post": serialize(p, userID)})
	logs.LogJSON("INFO", "Post created successfully", logs.Fields{
		"route":  route,
		"userID": userID,
		"postID": p.ID,
	})
}

// EditPost POST /api/posts/:id/edit
// Only the author may edit. Text is always replaced; the image is only
// touched when img_change says so, and an empty file then clears it.
func EditPost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	postID := c.Param("id")

	p, err := ByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error loading post"})
		return
	}
	if p.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	p.ContentText = c.PostForm("text")

	imgChange := c.PostForm("img_change")
	if imgChange != "" && imgChange != "false" {
		imageURL, err := uploadPostImage(c, "picture")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		if p.ImageURL != "" {
			if key := storage.ObjectKey(p.ImageURL); key != "" {
				_ = storage.DeleteFromS3(key)
			}
		}
		p.ImageURL = imageURL
	}

	if err := database.DB.Save(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error updating post"})
		logs.LogJSON("ERROR", "Post update error", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"text":    p.ContentText,
		"picture": p.ImageURL,
	})
	logs.LogJSON("INFO", "Post updated successfully", logs.Fields{
		"route":  route,
		"userID": userID,
		"postID": postID,
	})
}

// DeletePost PUT /api/posts/:id
// Removes the post with its comments and like/save memberships in one
// transaction, then drops the S3 object best effort.
func DeletePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	postID := c.Param("id")

	p, err := ByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading post"})
		return
	}
	if p.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&Save{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Post{}, "id = ?", postID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting post"})
		logs.LogJSON("ERROR", "Post deletion error", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	if p.ImageURL != "" {
		if key := storage.ObjectKey(p.ImageURL); key != "" {
			if err := storage.DeleteFromS3(key); err != nil {
				logs.LogJSON("WARN", "Error deleting post image from S3", logs.Fields{
					"error":  err.Error(),
					"postID": postID,
				})
			}
		}
	}

	c.Status(http.StatusNoContent)
	logs.LogJSON("INFO", "Post deleted successfully", logs.Fields{
		"route":  route,
		"userID": userID,
		"postID": postID,
	})
}

// toggleMembership factors the four like/save toggles: check the post,
// apply the set operation, answer 204.
func toggleMembership(c *gin.Context, action string, op func(postID, userID string) error) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	postID := c.Param("id")

	ok, err := Exists(postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading post"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if err := op(postID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating post"})
		logs.LogJSON("ERROR", "Error toggling "+action, logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// LikePost PUT /api/posts/:id/like
func LikePost(c *gin.Context) {
	toggleMembership(c, "like", AddLiker)
}

// UnlikePost PUT /api/posts/:id/unlike
func UnlikePost(c *gin.Context) {
	toggleMembership(c, "like", RemoveLiker)
}

// SavePost PUT /api/posts/:id/save
func SavePost(c *gin.Context) {
	toggleMembership(c, "save", AddSaver)
}

// UnsavePost PUT /api/posts/:id/unsave
func UnsavePost(c *gin.Context) {
	toggleMembership(c, "save", RemoveSaver)
}
