package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const LoginURL = "/auth/login/"

// User is authenticated and satisfies the route requirements
type HandlerFunc func(c *gin.Context, identity Identity)

// Requirement is an extra check on top of being logged in, e.g. CanAdminister
type Requirement func(identity Identity) bool

// Router is a wrapper that adds login checks + Identity loading
type Router struct {
	Base gin.IRoutes
}

// LoginRedirectURL points to the login prompt, returning to path afterwards
func LoginRedirectURL(path string) string {
	return LoginURL + "?next=" + strings.ReplaceAll(url.QueryEscape(path), "%2F", "/")
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, required []Requirement) {
	identity := LoadSession(c).Identity()
	if !identity.Authenticated() {
		c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.Path))
		return
	}
	for _, check := range required {
		if !check(identity) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
	}
	handler(c, identity)
}

func (cr *Router) POST(path string, handler HandlerFunc, required ...Requirement) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc, required ...Requirement) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

// Any registers the handler for both GET and POST
func (cr *Router) Any(path string, handler HandlerFunc, required ...Requirement) {
	cr.GET(path, handler, required...)
	cr.POST(path, handler, required...)
}
