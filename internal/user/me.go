package user

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bornebyte/Network/internal/database"
	"github.com/bornebyte/Network/internal/logs"
	"github.com/bornebyte/Network/internal/storage"
)

var validImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".webp": true, ".heic": true,
}

// GetMe GET /api/me
func GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	var u User
	if err := database.DB.First(&u, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u})
}

// UpdateMe PATCH /api/me
// Multipart form: firstname, lastname and the optional image files
// "profile_picture" and "cover". Only provided fields are touched.
func UpdateMe(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var u User
	if err := database.DB.First(&u, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if firstname := c.PostForm("firstname"); firstname != "" {
		u.FirstName = firstname
	}
	if lastname := c.PostForm("lastname"); lastname != "" {
		u.LastName = lastname
	}

	avatarURL, err := replaceImage(c, "profile_picture", "avatars", fmt.Sprintf("user_%s", userID), u.AvatarURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if avatarURL != "" {
		u.AvatarURL = avatarURL
	}

	coverURL, err := replaceImage(c, "cover", "covers", fmt.Sprintf("cover_%s", userID), u.CoverURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if coverURL != "" {
		u.CoverURL = coverURL
	}

	if err := database.DB.Save(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
		logs.LogJSON("ERROR", "Profile update error", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": u})
	logs.LogJSON("INFO", "Profile updated successfully", logs.Fields{
		"route":  route,
		"userID": userID,
	})
}

// replaceImage uploads the form file under field to S3 and removes the
// previous object. Returns "" when the field carries no file.
func replaceImage(c *gin.Context, field, folder, baseName, oldURL string) (string, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return "", nil
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !validImageExtensions[ext] {
		return "", fmt.Errorf("invalid file extension")
	}

	if oldURL != "" {
		if key := storage.ObjectKey(oldURL); key != "" {
			_ = storage.DeleteFromS3(key)
		}
	}

	filename := fmt.Sprintf("%s%s", baseName, ext)
	contentType := header.Header.Get("Content-Type")
	url, err := storage.UploadToS3(file, filename, contentType, folder)
	if err != nil {
		return "", fmt.Errorf("image upload failed")
	}
	return url, nil
}
