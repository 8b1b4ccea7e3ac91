package handlers

import (
	"blog/auth"
	"blog/utils"

	"github.com/gin-gonic/gin"
)

const mediaCacheSeconds = 7 * 86400

// SetupRoutes registers every end-point. Sessions must already be in the middleware chain
func SetupRoutes(router *gin.Engine) {
	IndexCache = newIndexCache()
	authRouter := &auth.Router{Base: router}
	admin := auth.CanAdminister

	// Feeds
	router.GET("/", IndexCache.Handler(indexCacheKey), Index)
	router.GET("/group/:slug/", GroupPosts)
	router.GET("/profile/:username/", Profile)
	authRouter.GET("/follow/", FollowIndex)
	// Posts
	router.GET("/posts/:id/", PostDetail)
	authRouter.GET("/create/", PostCreateForm)
	authRouter.POST("/create/", PostCreate)
	authRouter.GET("/posts/:id/edit/", PostEditForm)
	authRouter.POST("/posts/:id/edit/", PostEdit)
	authRouter.POST("/posts/:id/delete/", PostDelete)
	authRouter.Any("/posts/:id/comment/", AddComment)
	// Follow graph
	authRouter.Any("/profile/:username/follow/", ProfileFollow)
	authRouter.Any("/profile/:username/unfollow/", ProfileUnfollow)
	// Groups
	router.GET("/groups/", GroupList)
	authRouter.POST("/groups/", GroupCreate, admin)
	authRouter.POST("/group/:slug/delete/", GroupDelete, admin)
	// Accounts
	router.POST("/auth/signup/", UserSignup)
	router.GET("/auth/login/", UserLoginPrompt)
	router.POST("/auth/login/", UserLogin)
	authRouter.POST("/auth/logout/", UserLogout)
	authRouter.POST("/auth/delete/", UserDelete)
	// Media, individual files never change
	media := router.Group("/media", (&utils.CacheRouter{CacheTime: mediaCacheSeconds, Public: true}).Handler())
	media.GET("/*path", MediaServe)
	// Live feed
	authRouter.GET("/ws/feed", FeedSocket)
	// Admin
	authRouter.POST("/cache/clear/", CacheClear, admin)

	router.NoRoute(NotFound)
}
