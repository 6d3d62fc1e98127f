package auth

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bornebyte/Network/internal/database"
	"github.com/bornebyte/Network/internal/follow"
	"github.com/bornebyte/Network/internal/logs"
	"github.com/bornebyte/Network/internal/user"
)

const tokenLifetime = 24 * time.Hour

// issueToken signs a session token carrying the user id.
func issueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

type registerRequest struct {
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

// Register POST /api/register
func Register(c *gin.Context) {
	route := c.FullPath()

	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration data"})
		return
	}

	if body.Password != body.Confirmation {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords must match"})
		return
	}
	if user.ExistsByUsername(body.Username) {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}
	if user.ExistsByEmail(body.Email) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating account"})
		logs.LogJSON("ERROR", "Password hashing error", logs.Fields{
			"error": err.Error(),
			"route": route,
		})
		return
	}

	u := user.User{
		ID:           uuid.New().String(),
		Username:     body.Username,
		Email:        body.Email,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		PasswordHash: string(hash),
	}
	if err := database.DB.Create(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating account"})
		logs.LogJSON("ERROR", "User creation error", logs.Fields{
			"error":    err.Error(),
			"route":    route,
			"username": body.Username,
		})
		return
	}

	if _, err := follow.GetOrCreateRecord(u.ID); err != nil {
		logs.LogJSON("WARN", "Error creating follower record", logs.Fields{
			"error":  err.Error(),
			"userID": u.ID,
		})
	}

	token, err := issueToken(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating session"})
		logs.LogJSON("ERROR", "Token signing error", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": u.ID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
	logs.LogJSON("INFO", "User registered successfully", logs.Fields{
		"route":    route,
		"userID":   u.ID,
		"username": u.Username,
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/login
func Login(c *gin.Context) {
	route := c.FullPath()

	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login data"})
		return
	}

	u, err := user.ByUsername(body.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username and/or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username and/or password"})
		return
	}

	token, err := issueToken(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating session"})
		logs.LogJSON("ERROR", "Token signing error", logs.Fields{
			"error":  err.Error(),
			"route":  route,
			"userID": u.ID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
	logs.LogJSON("INFO", "User logged in successfully", logs.Fields{
		"route":    route,
		"userID":   u.ID,
		"username": u.Username,
	})
}
