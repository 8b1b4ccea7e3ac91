package handlers

import (
	"blog/models"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

type FieldsResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

var (
	// Predefined errors
	OKResponse           = Response{}
	NotFoundResponse     = Response{"not found"}
	AccessDeniedResponse = Response{"access denied"}
	BadLoginResponse     = Response{"wrong username or password"}
	BadRequestResponse   = Response{"bad request"}
	DBError1Response     = Response{"DB Error 1"}
	DBError2Response     = Response{"DB Error 2"}
	StorageErrorResponse = Response{"Storage Error"}
)

// renderError maps model errors to responses. Permission errors redirect to deniedURL
func renderError(c *gin.Context, err error, deniedURL string) {
	var (
		notFound   *models.NotFoundError
		validation *models.ValidationError
		conflict   *models.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, Response{err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, FieldsResponse{"invalid form", validation.Fields})
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, FieldsResponse{"invalid form", map[string]string{conflict.Field: conflict.Error()}})
	case errors.Is(err, models.ErrPermissionDenied):
		if deniedURL == "" {
			c.JSON(http.StatusForbidden, AccessDeniedResponse)
			return
		}
		c.Redirect(http.StatusFound, deniedURL)
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, DBError1Response)
	}
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return 0, false
	}
	return id, true
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, NotFoundResponse)
}
