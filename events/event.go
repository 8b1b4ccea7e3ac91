package events

import (
	"blog/models"
)

const TypePostPublished = "post_published"

// PostPublished is pushed to the followers of the post's author
type PostPublished struct {
	Type      string  `json:"type"`
	PostID    uint64  `json:"post_id"`
	AuthorID  uint64  `json:"author_id"`
	Author    string  `json:"author"`
	Group     *string `json:"group"`
	Text      string  `json:"text"`
	CreatedAt int64   `json:"created_at"`
	Origin    string  `json:"origin,omitempty"`
}

func NewPostPublished(post *models.Post) PostPublished {
	ev := PostPublished{
		Type:      TypePostPublished,
		PostID:    post.ID,
		AuthorID:  post.AuthorID,
		Author:    post.Author.Username,
		Text:      post.Text,
		CreatedAt: post.CreatedAt,
	}
	if post.Group != nil {
		ev.Group = &post.Group.Slug
	}
	return ev
}
