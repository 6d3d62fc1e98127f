package post

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bornebyte/Network/internal/database"
	"github.com/bornebyte/Network/internal/logs"
	"github.com/bornebyte/Network/internal/user"
)

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	PostID    string    `json:"post_id" gorm:"index"`
	AuthorID  string    `json:"author_id"`
	Author    user.User `json:"-" gorm:"foreignKey:AuthorID"`
	Content   string    `json:"content" gorm:"type:text"`
}

func (Comment) TableName() string { return "comments" }

type CommentResponse struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Author    user.PublicInfo `json:"author"`
	Content   string          `json:"content"`
}

func serializeComment(cm Comment) CommentResponse {
	return CommentResponse{
		ID:        cm.ID,
		CreatedAt: cm.CreatedAt,
		Author:    cm.Author.Public(),
		Content:   cm.Content,
	}
}

// GetComments GET /api/posts/:id/comments
// A missing post answers an empty list rather than a 404.
func GetComments(c *gin.Context) {
	route := c.FullPath()
	postID := c.Param("id")

	var comments []Comment
	err := database.DB.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading comments"})
		logs.LogJSON("ERROR", "Error loading comments", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"postID": postID,
		})
		return
	}

	responses := make([]CommentResponse, 0, len(comments))
	for _, cm := range comments {
		responses = append(responses, serializeComment(cm))
	}
	c.JSON(http.StatusOK, gin.H{"comments": responses})
}

// CreateComment POST /api/posts/:id/comments
// Inserts the comment and bumps the post's comment counter in the same
// transaction, so the counter stays correct under concurrent writers.
func CreateComment(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var body struct {
		CommentText string `json:"comment_text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text required"})
		return
	}

	ok, err := Exists(postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading post"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	cm := Comment{
		ID:       uuid.New().String(),
		PostID:   postID,
		AuthorID: userID,
		Content:  body.CommentText,
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cm).Error; err != nil {
			return err
		}
		return tx.Model(&Post{}).Where("id = ?", postID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating comment"})
		logs.LogJSON("ERROR", "Comment creation error", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	database.DB.Preload("Author").First(&cm, "id = ?", cm.ID)
	c.JSON(http.StatusCreated, gin.H{"comment": serializeComment(cm)})
	logs.LogJSON("INFO", "Comment created successfully", logs.Fields{
		"route":  route,
		"userID": userID,
		"postID": postID,
	})
}
