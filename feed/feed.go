package feed

import (
	"blog/config"
	"blog/db"
	"blog/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

const defaultPageSize = 10

type Page struct {
	Posts       []models.Post
	Number      int
	TotalPages  int
	Count       int64
	HasNext     bool
	HasPrevious bool
	// Resolved scope owners, set for group and author feeds
	Group  *models.Group
	Author *models.User
}

func (p *Page) NextNumber() int {
	if !p.HasNext {
		return 0
	}
	return p.Number + 1
}

func (p *Page) PreviousNumber() int {
	if !p.HasPrevious {
		return 0
	}
	return p.Number - 1
}

func pageSize() int {
	if config.MAX_POSTS > 0 {
		return config.MAX_POSTS
	}
	return defaultPageSize
}

// Build returns page pageNumber of the posts in scope, newest first
func Build(ctx context.Context, scope Scope, pageNumber int) (*Page, error) {
	page := &Page{}
	filter, err := resolve(scope, page)
	if err != nil {
		return nil, err
	}
	tx := db.Instance.WithContext(ctx)

	paginator := Paginator{PerPage: pageSize()}
	if err = tx.Model(&models.Post{}).Scopes(filter).Count(&paginator.Count).Error; err != nil {
		return nil, fmt.Errorf("count %s feed: %w", scope, err)
	}
	page.Number = paginator.Clamp(pageNumber)
	page.TotalPages = paginator.NumPages()
	page.Count = paginator.Count
	page.HasNext = page.Number < page.TotalPages
	page.HasPrevious = page.Number > 1

	err = tx.Scopes(filter).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC, id DESC").
		Offset(paginator.Offset(page.Number)).
		Limit(paginator.PerPage).
		Find(&page.Posts).Error
	if err != nil {
		return nil, fmt.Errorf("load %s feed: %w", scope, err)
	}
	return page, nil
}

// followedAuthors selects the authors userID follows, sharing the context of tx
func followedAuthors(tx *gorm.DB, userID uint64) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID)
}

// resolve turns the scope into a query filter, looking up its group or author
func resolve(scope Scope, page *Page) (func(*gorm.DB) *gorm.DB, error) {
	switch scope.Kind {
	case KindAll:
		return func(tx *gorm.DB) *gorm.DB { return tx }, nil
	case KindGroup:
		group, err := models.GroupBySlug(scope.Slug)
		if err != nil {
			return nil, err
		}
		page.Group = &group
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("group_id = ?", group.ID)
		}, nil
	case KindAuthor:
		author, err := models.UserByUsername(scope.Username)
		if err != nil {
			return nil, err
		}
		page.Author = &author
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("author_id = ?", author.ID)
		}, nil
	case KindFollowed:
		if !scope.Identity.Authenticated() {
			return nil, models.ErrPermissionDenied
		}
		userID := scope.Identity.UserID
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("author_id IN (?)", followedAuthors(tx, userID))
		}, nil
	}
	return nil, fmt.Errorf("unknown feed scope %d", scope.Kind)
}
