package handlers

import (
	"blog/auth"
	"blog/forms"
	"blog/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func GroupList(c *gin.Context) {
	groups, err := models.GroupList()
	if err != nil {
		renderError(c, err, "")
		return
	}
	result := make([]*GroupInfo, 0, len(groups))
	for i := range groups {
		result = append(result, groupInfo(&groups[i]))
	}
	c.JSON(http.StatusOK, gin.H{"groups": result})
}

func GroupCreate(c *gin.Context, identity auth.Identity) {
	var form forms.GroupForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	form, err := form.Clean()
	if err != nil {
		renderError(c, err, "")
		return
	}
	group, err := models.GroupCreate(form.Title, form.Slug, form.Description)
	if err != nil {
		renderError(c, err, "")
		return
	}
	c.Redirect(http.StatusFound, "/group/"+group.Slug+"/")
}

// GroupDelete keeps the posts of the group, they just lose it
func GroupDelete(c *gin.Context, identity auth.Identity) {
	if err := models.GroupDelete(c.Param("slug")); err != nil {
		renderError(c, err, "")
		return
	}
	c.Redirect(http.StatusFound, "/groups/")
}
