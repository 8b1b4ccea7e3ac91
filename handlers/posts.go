package handlers

import (
	"blog/auth"
	"blog/events"
	"blog/feed"
	"blog/forms"
	"blog/models"
	"blog/processing"
	"blog/storage"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const invalidImageMessage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func postURL(id uint64) string {
	return "/posts/" + strconv.FormatUint(id, 10) + "/"
}

func pageNumber(c *gin.Context) int {
	return feed.ParsePageNumber(c.Query("page"))
}

// Index is the feed of all posts
func Index(c *gin.Context) {
	page, err := feed.Build(c.Request.Context(), feed.All(), pageNumber(c))
	if err != nil {
		renderError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": pageInfo(page)})
}

func GroupPosts(c *gin.Context) {
	page, err := feed.Build(c.Request.Context(), feed.ByGroup(c.Param("slug")), pageNumber(c))
	if err != nil {
		renderError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": groupInfo(page.Group), "page": pageInfo(page)})
}

func Profile(c *gin.Context) {
	page, err := feed.Build(c.Request.Context(), feed.ByAuthor(c.Param("username")), pageNumber(c))
	if err != nil {
		renderError(c, err, "")
		return
	}
	identity := auth.LoadSession(c).Identity()
	following := false
	if identity.Authenticated() && identity.UserID != page.Author.ID {
		if following, err = models.IsFollowing(identity.UserID, page.Author.ID); err != nil {
			renderError(c, err, "")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"author":    userInfo(page.Author),
		"following": following,
		"page":      pageInfo(page),
	})
}

func PostDetail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	post, err := models.PostByID(id)
	if err != nil {
		renderError(c, err, "")
		return
	}
	comments, err := models.CommentsForPost(id)
	if err != nil {
		renderError(c, err, "")
		return
	}
	authorPosts, err := models.PostCountByAuthor(post.AuthorID)
	if err != nil {
		renderError(c, err, "")
		return
	}
	result := make([]CommentInfo, 0, len(comments))
	for i := range comments {
		result = append(result, commentInfo(&comments[i]))
	}
	identity := auth.LoadSession(c).Identity()
	c.JSON(http.StatusOK, gin.H{
		"post":         postInfo(&post),
		"author_posts": authorPosts,
		"comments":     result,
		"can_edit":     auth.CanEdit(identity, &post),
		"can_comment":  auth.CanComment(identity),
	})
}

func postFormDescription(post *models.Post) (gin.H, error) {
	groups, err := models.GroupList()
	if err != nil {
		return nil, err
	}
	choices := make([]*GroupInfo, 0, len(groups))
	for i := range groups {
		choices = append(choices, groupInfo(&groups[i]))
	}
	result := gin.H{
		"fields": []string{"text", "group", "image"},
		"groups": choices,
	}
	if post != nil {
		result["post"] = postInfo(post)
	}
	return result, nil
}

// storeUpload saves the optional "image" file and returns its storage path, empty if none was sent
func storeUpload(c *gin.Context) (string, error) {
	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	stored, err := processing.StorePostImage(storage.GetDefaultStorage(), file)
	if errors.Is(err, processing.ErrNotAnImage) {
		return "", &models.ValidationError{Fields: map[string]string{"image": invalidImageMessage}}
	}
	if err != nil {
		return "", err
	}
	return stored.Path, nil
}

func bindPostForm(c *gin.Context) (form forms.PostForm, ok bool) {
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return form, false
	}
	form, err := form.Clean()
	if err != nil {
		renderError(c, err, "")
		return form, false
	}
	return form, true
}

func PostCreateForm(c *gin.Context, identity auth.Identity) {
	description, err := postFormDescription(nil)
	if err != nil {
		renderError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, description)
}

func PostCreate(c *gin.Context, identity auth.Identity) {
	form, ok := bindPostForm(c)
	if !ok {
		return
	}
	image, err := storeUpload(c)
	if err != nil {
		renderError(c, err, "")
		return
	}
	post, err := models.PostCreate(identity.UserID, form.Text, form.GroupID, image)
	if err != nil {
		processing.DeletePostImage(storage.GetDefaultStorage(), image)
		renderError(c, err, "")
		return
	}
	if published, err := models.PostByID(post.ID); err != nil {
		log.Printf("Cannot reload post %d: %v", post.ID, err)
	} else {
		events.PublishPost(&published)
	}
	c.Redirect(http.StatusFound, profileURL(identity.Username))
}

// loadOwnPost loads the post and redirects to its author's profile unless identity may edit it
func loadOwnPost(c *gin.Context, identity auth.Identity) (post models.Post, ok bool) {
	id, ok := idParam(c)
	if !ok {
		return post, false
	}
	post, err := models.PostByID(id)
	if err != nil {
		renderError(c, err, "")
		return post, false
	}
	if !auth.CanEdit(identity, &post) {
		renderError(c, models.ErrPermissionDenied, profileURL(post.Author.Username))
		return post, false
	}
	return post, true
}

func PostEditForm(c *gin.Context, identity auth.Identity) {
	post, ok := loadOwnPost(c, identity)
	if !ok {
		return
	}
	description, err := postFormDescription(&post)
	if err != nil {
		renderError(c, err, "")
		return
	}
	description["is_edit"] = true
	c.JSON(http.StatusOK, description)
}

// PostEdit keeps the current image unless a new one is uploaded
func PostEdit(c *gin.Context, identity auth.Identity) {
	post, ok := loadOwnPost(c, identity)
	if !ok {
		return
	}
	form, ok := bindPostForm(c)
	if !ok {
		return
	}
	image, err := storeUpload(c)
	if err != nil {
		renderError(c, err, "")
		return
	}
	oldImage := post.Image
	if image == "" {
		image = oldImage
	}
	if err = models.PostUpdate(&post, form.Text, form.GroupID, image); err != nil {
		if image != oldImage {
			processing.DeletePostImage(storage.GetDefaultStorage(), image)
		}
		renderError(c, err, "")
		return
	}
	if image != oldImage {
		processing.DeletePostImage(storage.GetDefaultStorage(), oldImage)
	}
	c.Redirect(http.StatusFound, postURL(post.ID))
}

func PostDelete(c *gin.Context, identity auth.Identity) {
	post, ok := loadOwnPost(c, identity)
	if !ok {
		return
	}
	if err := models.PostDelete(post.ID); err != nil {
		renderError(c, err, "")
		return
	}
	processing.DeletePostImage(storage.GetDefaultStorage(), post.Image)
	c.Redirect(http.StatusFound, profileURL(post.Author.Username))
}

// AddComment always returns to the post, an invalid comment is dropped
func AddComment(c *gin.Context, identity auth.Identity) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := models.PostByID(id); err != nil {
		renderError(c, err, "")
		return
	}
	if c.Request.Method == http.MethodPost {
		var form forms.CommentForm
		if err := c.ShouldBindWith(&form, binding.Form); err == nil {
			if form, err = form.Clean(); err == nil {
				if _, err = models.CommentCreate(id, identity.UserID, form.Text); err != nil {
					renderError(c, err, "")
					return
				}
			}
		}
	}
	c.Redirect(http.StatusFound, postURL(id))
}
