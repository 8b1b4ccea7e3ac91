package models

import (
	"blog/db"
	"fmt"
)

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"<-:create;index"`
	PostID    uint64 `gorm:"not null;index"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint64 `gorm:"not null;index"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string `gorm:"type:text;not null"`
}

func (c Comment) String() string {
	return shorten(c.Text, shortTextLength)
}

func CommentCreate(postID, authorID uint64, text string) (c Comment, err error) {
	if _, err = PostByID(postID); err != nil {
		return
	}
	c = Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	if err = db.Instance.Create(&c).Error; err != nil {
		return Comment{}, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// CommentsForPost returns the comments newest first
func CommentsForPost(postID uint64) (comments []Comment, err error) {
	err = db.Instance.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return
}
