package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/conghanh/luanho/internal/app/controllers"
	"github.com/conghanh/luanho/internal/middleware"
	"github.com/conghanh/luanho/internal/pkg/realtime"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	postController *controllers.PostController,
	userController *controllers.UserController,
	leaderboardController *controllers.LeaderboardController,
	categoryController *controllers.CategoryController,
	aiController *controllers.AIController,
	wsHandler *realtime.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/oauth", authController.OAuthLogin)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Public read routes ---
	// The feed personalizes the liked flag when a valid token is present but
	// never requires one.
	posts := v1.Group("/posts")
	posts.Use(authMiddleware.OptionalAuth())
	{
		posts.GET("", postController.ListFeed)
		posts.GET("/:id", postController.GetPost)
		posts.GET("/:id/comments", postController.ListComments)
	}

	users := v1.Group("/users")
	users.Use(authMiddleware.OptionalAuth())
	{
		users.GET("/:uid", userController.GetProfile)
		users.GET("/:uid/posts", userController.ListUserPosts)
		users.GET("/:uid/comments", userController.ListUserComments)
	}

	v1.GET("/leaderboard", leaderboardController.Top)
	v1.GET("/categories", categoryController.List)

	// Websocket change feed
	v1.GET("/ws", wsHandler.Serve)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/posts", postController.CreatePost)
		authenticated.DELETE("/posts/:id", postController.DeletePost)
		authenticated.POST("/posts/:id/like", postController.LikePost)
		authenticated.DELETE("/posts/:id/like", postController.UnlikePost)
		authenticated.POST("/posts/:id/comments", postController.AddComment)

		authenticated.PATCH("/users/me", userController.UpdateProfile)
		authenticated.PUT("/users/me/avatar", userController.UpdateAvatar)
		authenticated.POST("/notifications/:id/read", userController.MarkNotificationRead)

		authenticated.POST("/categories", categoryController.Create)

		// The whole AI surface is operator-only
		ai := authenticated.Group("/ai")
		ai.Use(authMiddleware.RequireAdmin())
		{
			ai.POST("/suggest-title", aiController.SuggestTitle)
			ai.POST("/draft", aiController.DraftContent)
			ai.POST("/refine", aiController.RefineContent)

			lab := ai.Group("/lab")
			{
				lab.POST("/generate", aiController.LabGenerate)
				lab.POST("/publish", aiController.LabPublish)
			}
		}
	}
}
