package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kreyvi/hw05-final/internal/cache"
	"github.com/Kreyvi/hw05-final/internal/config"
	"github.com/Kreyvi/hw05-final/internal/database"
	"github.com/Kreyvi/hw05-final/internal/feed"
	"github.com/Kreyvi/hw05-final/internal/follow"
	"github.com/Kreyvi/hw05-final/internal/group"
	"github.com/Kreyvi/hw05-final/internal/logs"
	"github.com/Kreyvi/hw05-final/internal/middleware"
	"github.com/Kreyvi/hw05-final/internal/post"
	"github.com/Kreyvi/hw05-final/internal/storage"
	"github.com/Kreyvi/hw05-final/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()
	if cfg.DBUrl == "" {
		panic("DATABASE_URL missing")
	}

	db, err := database.Connect(cfg.DBUrl)
	if err != nil {
		logs.LogJSON("FATAL", "Database connection failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&user.User{},
		&group.Group{},
		&post.Post{},
		&post.Comment{},
		&follow.Follow{},
	); err != nil {
		logs.LogJSON("FATAL", "Migration failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	if cfg.AWSBucket != "" {
		if err := storage.InitS3(cfg.AWSBucket, cfg.AWSRegion); err != nil {
			logs.LogJSON("FATAL", "S3 init failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
	}

	posts := post.NewStore(db)
	users := user.NewStore(db)
	groups := group.NewStore(db)
	graph := follow.NewStore(db)
	composer := feed.NewComposer(posts, graph)
	timeline := cache.NewTimeline(cfg.CacheTTL)

	feedHandler := feed.NewHandler(composer, posts, users, groups, graph, cfg.PageSize)
	postHandler := post.NewHandler(posts, groups)
	followHandler := follow.NewHandler(graph, users)
	groupHandler := group.NewHandler(groups)

	r := gin.Default()

	r.GET("/", middleware.CachedTimeline(timeline), feedHandler.Index)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "path": c.Request.URL.Path})
	})

	api := r.Group("/api")

	// Public timelines
	api.GET("/feed", middleware.CachedTimeline(timeline), feedHandler.Index)
	api.GET("/groups", groupHandler.ListGroups)
	api.GET("/groups/:slug/posts", feedHandler.GroupPosts)
	api.GET("/users/:username/posts", middleware.OptionalAuthMiddleware(), feedHandler.Profile)
	api.GET("/users/:username/posts/:id", postHandler.GetPost)
	api.GET("/posts/:id/comments", postHandler.GetComments)

	// Authenticated viewer required
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	authed.POST("/posts", postHandler.CreatePost)
	authed.PATCH("/posts/:id", postHandler.EditPost)
	authed.POST("/posts/:id/comments", postHandler.CreateComment)
	authed.GET("/feed/following", feedHandler.Following)
	authed.POST("/users/:username/follow", followHandler.FollowUser)
	authed.DELETE("/users/:username/follow", followHandler.UnfollowUser)

	if err := r.Run(":" + cfg.Port); err != nil {
		logs.LogJSON("FATAL", "Server stopped", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}
