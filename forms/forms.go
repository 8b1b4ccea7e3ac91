// Package forms validates user input before it reaches the models.
// Every form has a Clean method returning either the cleaned form or a *models.ValidationError
package forms

import (
	"blog/models"
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()
	slugRe   = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	return v
}

// PostForm - the image is an upload and is checked by the handler
type PostForm struct {
	Text    string  `form:"text" json:"text" validate:"required"`
	GroupID *uint64 `form:"group" json:"group"`
}

type CommentForm struct {
	Text string `form:"text" json:"text" validate:"required"`
}

type GroupForm struct {
	Title       string `form:"title" json:"title" validate:"required,max=200"`
	Slug        string `form:"slug" json:"slug" validate:"required,max=50,slug"`
	Description string `form:"description" json:"description" validate:"required"`
}

type SignupForm struct {
	Username string `form:"username" json:"username" validate:"required,max=150,slug"`
	Name     string `form:"name" json:"name" validate:"max=150"`
	Password string `form:"password" json:"password" validate:"required,min=8"`
}

type LoginForm struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	Next     string `form:"next" json:"next"`
}

func (f PostForm) Clean() (PostForm, error) {
	f.Text = strings.TrimSpace(f.Text)
	if f.GroupID != nil && *f.GroupID == 0 {
		f.GroupID = nil
	}
	return f, check(f)
}

func (f CommentForm) Clean() (CommentForm, error) {
	f.Text = strings.TrimSpace(f.Text)
	return f, check(f)
}

func (f GroupForm) Clean() (GroupForm, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Slug = strings.TrimSpace(f.Slug)
	f.Description = strings.TrimSpace(f.Description)
	return f, check(f)
}

func (f SignupForm) Clean() (SignupForm, error) {
	f.Username = strings.TrimSpace(f.Username)
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		f.Name = f.Username
	}
	return f, check(f)
}

func (f LoginForm) Clean() (LoginForm, error) {
	f.Username = strings.TrimSpace(f.Username)
	// only local paths are followed after login
	if !strings.HasPrefix(f.Next, "/") || strings.HasPrefix(f.Next, "//") {
		f.Next = "/"
	}
	return f, check(f)
}

func check(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	result := &models.ValidationError{}
	for _, fe := range fieldErrors {
		result.Add(fieldName(fe), message(fe))
	}
	return result
}

// fieldName returns the form name of the field, e.g. "group" for GroupID
func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "GroupID":
		return "group"
	}
	return strings.ToLower(fe.Field())
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return "Ensure this value has at most " + fe.Param() + " characters."
	case "min":
		return "Ensure this value has at least " + fe.Param() + " characters."
	case "slug":
		return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	}
	return "Enter a valid value."
}
