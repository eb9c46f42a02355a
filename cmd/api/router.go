package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"news-portal-backend/internal/shared/middleware"
	"news-portal-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupArticleRoutes(v1, c)
		setupCommentRoutes(v1, c)
		setupAdRoutes(v1, c)
		setupChatRoutes(v1, c)
		setupTaskRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
		users.PUT("/me", c.UserHandler.UpdateProfile)
		users.POST("/me/avatar", c.UserHandler.UploadAvatar)
	}
}

// ========================================
// ARTICLE ROUTES (public feed)
// ========================================
func setupArticleRoutes(v1 *gin.RouterGroup, c *container.Container) {
	articles := v1.Group("/articles")
	{
		articles.GET("", c.ArticleHandler.ListArticles)
		articles.GET("/:id", c.ArticleHandler.GetArticleDetail)
		articles.GET("/:id/related", c.ArticleHandler.GetRelatedArticles)
	}

	v1.GET("/categories/:slug/articles", c.ArticleHandler.ListByCategory)
}

// ========================================
// COMMENT ROUTES
// ========================================
func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/articles/:id/comments", c.CommentHandler.ListComments)
	v1.POST("/articles/:id/comments",
		middleware.AuthMiddleware(c.JWTManager),
		c.CommentHandler.CreateComment,
	)
}

// ========================================
// AD ROUTES (public render slots)
// ========================================
func setupAdRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/ads", c.AdHandler.ListAds)
}

// ========================================
// CHAT ROUTES
// ========================================
func setupChatRoutes(v1 *gin.RouterGroup, c *container.Container) {
	chat := v1.Group("/chat/:sessionID")
	{
		chat.GET("/messages", c.ChatHandler.ListMessages)
		chat.POST("/messages", c.ChatHandler.SendMessage)
		chat.POST("/bot", c.ChatHandler.BotReply)
		chat.GET("/stream", c.ChatHandler.StreamMessages)
	}
}

// ========================================
// TASK ROUTES
// ========================================
func setupTaskRoutes(v1 *gin.RouterGroup, c *container.Container) {
	tasks := v1.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		tasks.POST("/djm", c.TaskHandler.CreateDJM)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		// Articles
		admin.GET("/articles", c.ArticleHandler.ListAllArticles)
		admin.POST("/articles", c.ArticleHandler.CreateArticle)
		admin.PUT("/articles/:id", c.ArticleHandler.UpdateArticle)
		admin.DELETE("/articles/:id", c.ArticleHandler.DeleteArticle)
		admin.POST("/articles/image", c.ArticleHandler.UploadImage)

		// Users
		admin.GET("/users", c.UserHandler.ListUsers)
		admin.POST("/users", c.UserHandler.CreateUser)
		admin.PUT("/users/:id", c.UserHandler.UpdateUser)
		admin.DELETE("/users/:id", c.UserHandler.DeleteUser)

		// Ads
		admin.PUT("/ads/:slot", c.AdHandler.UpdateAd)
		admin.POST("/ads/:slot/image", c.AdHandler.UploadCreative)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "ok"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "unreachable"
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "unreachable"
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":   "up",
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
