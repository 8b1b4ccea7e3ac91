package handlers

import (
	"blog/storage"
	"strings"

	"github.com/gin-gonic/gin"
)

func MediaServe(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	storage.GetDefaultStorage().Serve(path, c.Request, c.Writer)
}
