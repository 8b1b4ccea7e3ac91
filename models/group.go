package models

import (
	"blog/db"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const GroupTitleMaxLength = 200

type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Title       string `gorm:"type:varchar(200);not null"`
	Slug        string `gorm:"type:varchar(50);index:uniq_slug,unique"`
	Description string `gorm:"type:text"`
}

func (g Group) String() string {
	return g.Title
}

func GroupCreate(title, slug, description string) (g Group, err error) {
	g = Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	if err = db.Instance.Create(&g).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return Group{}, &ConflictError{Field: "slug", Value: slug}
		}
		return Group{}, fmt.Errorf("create group: %w", err)
	}
	return g, nil
}

func GroupBySlug(slug string) (g Group, err error) {
	err = db.Instance.First(&g, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return g, &NotFoundError{Entity: "group", Key: slug}
	}
	return
}

func GroupByID(id uint64) (g Group, err error) {
	err = db.Instance.First(&g, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return g, &NotFoundError{Entity: "group", Key: fmt.Sprint(id)}
	}
	return
}

func GroupList() (groups []Group, err error) {
	err = db.Instance.Order("title ASC, id ASC").Find(&groups).Error
	return
}

// GroupDelete deletes the group; its posts stay, detached from any group
func GroupDelete(slug string) error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		var g Group
		if err := tx.First(&g, "slug = ?", slug).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "group", Key: slug}
			}
			return err
		}
		if err := tx.Model(&Post{}).Where("group_id = ?", g.ID).Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&g).Error
	})
}
