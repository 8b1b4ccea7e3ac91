package handlers

import (
	"blog/auth"
	"blog/feed"
	"blog/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FollowIndex is the feed of authors the user follows
func FollowIndex(c *gin.Context, identity auth.Identity) {
	page, err := feed.Build(c.Request.Context(), feed.ByFollowedAuthors(identity), pageNumber(c))
	if err != nil {
		renderError(c, err, auth.LoginRedirectURL(c.Request.URL.Path))
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": pageInfo(page)})
}

func ProfileFollow(c *gin.Context, identity auth.Identity) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		renderError(c, err, "")
		return
	}
	if err = models.FollowAuthor(identity.UserID, author.ID); err != nil {
		renderError(c, err, "")
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}

func ProfileUnfollow(c *gin.Context, identity auth.Identity) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		renderError(c, err, "")
		return
	}
	if err = models.UnfollowAuthor(identity.UserID, author.ID); err != nil {
		renderError(c, err, "")
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}
