package models

import (
	"blog/db"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Text of posts and comments is shortened to this many characters when rendered as a string
const shortTextLength = 15

// Post.CreatedAt and Post.AuthorID are written once, on create
type Post struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"<-:create;index"`
	UpdatedAt int64
	AuthorID  uint64  `gorm:"<-:create;not null;index"`
	Author    User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint64 `gorm:"index"`
	Group     *Group  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Text      string  `gorm:"type:text;not null"`
	Image     string  `gorm:"type:varchar(255)"` // storage path, empty if none
}

func (p Post) String() string {
	group := "None"
	if p.Group != nil {
		group = p.Group.String()
	}
	return fmt.Sprintf("author: %s, date: %s, group: %s, text: %s",
		p.Author.Username,
		time.Unix(p.CreatedAt, 0).Format("01022006"),
		group,
		shorten(p.Text, shortTextLength),
	)
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func checkGroupExists(tx *gorm.DB, groupID *uint64) error {
	if groupID == nil {
		return nil
	}
	var count int64
	if err := tx.Model(&Group{}).Where("id = ?", *groupID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &ValidationError{Fields: map[string]string{"group": "Select a valid choice."}}
	}
	return nil
}

func PostCreate(authorID uint64, text string, groupID *uint64, image string) (p Post, err error) {
	if err = checkGroupExists(db.Instance, groupID); err != nil {
		return
	}
	p = Post{
		AuthorID: authorID,
		GroupID:  groupID,
		Text:     text,
		Image:    image,
	}
	if err = db.Instance.Create(&p).Error; err != nil {
		return Post{}, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

// PostByID loads the post together with its author and group
func PostByID(id uint64) (p Post, err error) {
	err = db.Instance.Preload("Author").Preload("Group").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, &NotFoundError{Entity: "post", Key: strconv.FormatUint(id, 10)}
	}
	return
}

// PostUpdate only ever touches text, group and image
func PostUpdate(p *Post, text string, groupID *uint64, image string) error {
	if err := checkGroupExists(db.Instance, groupID); err != nil {
		return err
	}
	err := db.Instance.Model(p).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{"text": text, "group_id": groupID, "image": image}).Error
	if err != nil {
		return fmt.Errorf("update post %d: %w", p.ID, err)
	}
	p.Text = text
	p.GroupID = groupID
	p.Image = image
	if groupID == nil {
		p.Group = nil
	} else if p.Group == nil || p.Group.ID != *groupID {
		g, err := GroupByID(*groupID)
		if err != nil {
			return err
		}
		p.Group = &g
	}
	return nil
}

// PostDelete removes the post and its comments
func PostDelete(id uint64) error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &NotFoundError{Entity: "post", Key: strconv.FormatUint(id, 10)}
		}
		return nil
	})
}

func PostCountByAuthor(authorID uint64) (count int64, err error) {
	err = db.Instance.Model(&Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return
}

// PostImagesByAuthor lists the stored image paths of the author's posts
func PostImagesByAuthor(authorID uint64) (images []string, err error) {
	err = db.Instance.Model(&Post{}).Where("author_id = ? AND image <> ''", authorID).Pluck("image", &images).Error
	return
}
