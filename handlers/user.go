package handlers

import (
	"blog/auth"
	"blog/forms"
	"blog/models"
	"blog/processing"
	"blog/storage"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func UserSignup(c *gin.Context) {
	var form forms.SignupForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	form, err := form.Clean()
	if err != nil {
		renderError(c, err, "")
		return
	}
	user, err := models.UserCreate(form.Username, form.Name, form.Password, false)
	if err != nil {
		renderError(c, err, "")
		return
	}
	if err = auth.LoadSession(c).LoginUser(&user); err != nil {
		log.Printf("Session save for %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// UserLoginPrompt describes the login form, passing next through
func UserLoginPrompt(c *gin.Context) {
	form, _ := forms.LoginForm{Next: c.Query("next")}.Clean()
	c.JSON(http.StatusOK, gin.H{
		"fields": []string{"username", "password", "next"},
		"next":   form.Next,
	})
}

func UserLogin(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	form, err := form.Clean()
	if err != nil {
		renderError(c, err, "")
		return
	}
	user, ok := models.UserLogin(form.Username, form.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, BadLoginResponse)
		return
	}
	if err = auth.LoadSession(c).LoginUser(&user); err != nil {
		log.Printf("Session save for %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.Redirect(http.StatusFound, form.Next)
}

func UserLogout(c *gin.Context, identity auth.Identity) {
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, OKResponse)
}

// UserDelete removes the user's own account with everything it owns
func UserDelete(c *gin.Context, identity auth.Identity) {
	images, err := models.PostImagesByAuthor(identity.UserID)
	if err != nil {
		renderError(c, err, "")
		return
	}
	if err = models.UserDelete(identity.UserID); err != nil {
		renderError(c, err, "")
		return
	}
	for _, image := range images {
		processing.DeletePostImage(storage.GetDefaultStorage(), image)
	}
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, OKResponse)
}
