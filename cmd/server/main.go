package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bornebyte/Network/internal/auth"
	"github.com/bornebyte/Network/internal/config"
	"github.com/bornebyte/Network/internal/database"
	"github.com/bornebyte/Network/internal/follow"
	"github.com/bornebyte/Network/internal/logs"
	"github.com/bornebyte/Network/internal/middleware"
	"github.com/bornebyte/Network/internal/post"
	"github.com/bornebyte/Network/internal/storage"
	"github.com/bornebyte/Network/internal/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logs.LogJSON("WARN", "No .env file found", logs.Fields{})
	}

	cfg := config.LoadConfig()
	if cfg.DBUrl == "" {
		panic("DATABASE_URL is required")
	}

	database.Connect(cfg.DBUrl)
	database.Migrate(
		&user.User{},
		&post.Post{},
		&post.Like{},
		&post.Save{},
		&post.Comment{},
		&follow.Follower{},
		&follow.Member{},
	)

	if err := storage.InitS3(cfg.AWSBucket, cfg.AWSRegion, cfg.AWSKeyID, cfg.AWSKeySecret); err != nil {
		logs.LogJSON("WARN", "S3 unavailable, media uploads disabled", logs.Fields{
			"error": err.Error(),
		})
	}

	r := gin.Default()
	r.HandleMethodNotAllowed = true

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/register", auth.Register)
	api.POST("/login", auth.Login)

	public := api.Group("/")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("/posts", post.Index)
		public.GET("/profile/:username", post.Profile)
		public.GET("/posts/:id/comments", post.GetComments)
	}

	authed := api.Group("/")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/me", user.GetMe)
		authed.PATCH("/me", user.UpdateMe)

		authed.GET("/following", post.FollowingFeed)
		authed.GET("/saved", post.SavedFeed)

		authed.POST("/posts", post.CreatePost)
		authed.POST("/posts/:id/edit", post.EditPost)
		authed.PUT("/posts/:id", post.DeletePost)

		authed.PUT("/posts/:id/like", post.LikePost)
		authed.PUT("/posts/:id/unlike", post.UnlikePost)
		authed.PUT("/posts/:id/save", post.SavePost)
		authed.PUT("/posts/:id/unsave", post.UnsavePost)

		authed.POST("/posts/:id/comments", post.CreateComment)

		authed.PUT("/users/:username/follow", follow.FollowUser)
		authed.PUT("/users/:username/unfollow", follow.UnfollowUser)
	}

	logs.LogJSON("INFO", "Server starting", logs.Fields{"port": cfg.Port})
	if err := r.Run(":" + cfg.Port); err != nil {
		panic(err)
	}
}
