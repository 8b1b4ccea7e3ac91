package handlers

import (
	"blog/auth"
	"blog/cache"
	"blog/config"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// IndexCache holds rendered pages of the feed of all posts
var IndexCache = cache.New(0)

func newIndexCache() *cache.PageCache {
	return cache.New(time.Duration(config.FEED_CACHE_SECONDS) * time.Second)
}

func indexCacheKey(c *gin.Context) string {
	return "index?page=" + c.Query("page")
}

func CacheClear(c *gin.Context, identity auth.Identity) {
	IndexCache.Clear()
	c.JSON(http.StatusOK, OKResponse)
}
