package forms

import (
	"blog/models"
	"errors"
	"strings"
	"testing"
)

func fieldsOf(err error) map[string]string {
	var invalid *models.ValidationError
	if errors.As(err, &invalid) {
		return invalid.Fields
	}
	return nil
}

func TestPostForm_Clean(t *testing.T) {
	zero := uint64(0)
	three := uint64(3)
	tests := []struct {
		name       string
		form       PostForm
		wantFields []string
		wantGroup  *uint64
	}{
		{"valid", PostForm{Text: "hello"}, nil, nil},
		{"with group", PostForm{Text: "hello", GroupID: &three}, nil, &three},
		{"zero group means none", PostForm{Text: "hello", GroupID: &zero}, nil, nil},
		{"missing text", PostForm{}, []string{"text"}, nil},
		{"blank text", PostForm{Text: "   \n"}, []string{"text"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.form.Clean()
			fields := fieldsOf(err)
			if len(fields) != len(tt.wantFields) {
				t.Fatalf("Clean() error = %v, want fields %v", err, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if fields[f] == "" {
					t.Errorf("missing message for %q in %v", f, fields)
				}
			}
			if err == nil && (got.GroupID == nil) != (tt.wantGroup == nil) {
				t.Errorf("GroupID = %v, want %v", got.GroupID, tt.wantGroup)
			}
		})
	}
}

func TestGroupForm_Clean(t *testing.T) {
	tests := []struct {
		name       string
		form       GroupForm
		wantFields []string
	}{
		{"valid", GroupForm{Title: "Cats", Slug: "cats_and-dogs1", Description: "Meow"}, nil},
		{"title too long", GroupForm{Title: strings.Repeat("ы", 201), Slug: "cats", Description: "Meow"}, []string{"title"}},
		{"title at limit", GroupForm{Title: strings.Repeat("ы", 200), Slug: "cats", Description: "Meow"}, nil},
		{"bad slug", GroupForm{Title: "Cats", Slug: "cats & dogs", Description: "Meow"}, []string{"slug"}},
		{"all missing", GroupForm{}, []string{"title", "slug", "description"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Clean()
			fields := fieldsOf(err)
			if len(fields) != len(tt.wantFields) {
				t.Fatalf("Clean() error = %v, want fields %v", err, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if fields[f] == "" {
					t.Errorf("missing message for %q in %v", f, fields)
				}
			}
		})
	}
}

func TestCommentForm_Clean(t *testing.T) {
	if _, err := (CommentForm{Text: "nice"}).Clean(); err != nil {
		t.Errorf("Clean() error = %v", err)
	}
	_, err := (CommentForm{Text: " "}).Clean()
	if fields := fieldsOf(err); fields["text"] == "" {
		t.Errorf("blank comment accepted: %v", fields)
	}
}

func TestSignupForm_Clean(t *testing.T) {
	got, err := (SignupForm{Username: "leo", Password: "12345678"}).Clean()
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got.Name != "leo" {
		t.Errorf("Name = %q, want the username", got.Name)
	}
	_, err = (SignupForm{Username: "leo tolstoy", Password: "short"}).Clean()
	fields := fieldsOf(err)
	if fields["username"] == "" || fields["password"] == "" {
		t.Errorf("fields = %v, want username and password errors", fields)
	}
}

func TestLoginForm_Clean(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/create/", "/create/"},
		{"", "/"},
		{"https://evil.example/", "/"},
		{"//evil.example/", "/"},
	}
	for _, tt := range tests {
		got, err := (LoginForm{Username: "leo", Password: "x", Next: tt.next}).Clean()
		if err != nil {
			t.Fatal(err)
		}
		if got.Next != tt.want {
			t.Errorf("Next for %q = %q, want %q", tt.next, got.Next, tt.want)
		}
	}
}
