package handlers

import (
	"blog/feed"
	"blog/models"
	"blog/processing"
)

const mediaURL = "/media/"

type UserInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type GroupInfo struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type PostInfo struct {
	ID        uint64     `json:"id"`
	Text      string     `json:"text"`
	CreatedAt int64      `json:"created_at"`
	Author    UserInfo   `json:"author"`
	Group     *GroupInfo `json:"group"`
	Image     string     `json:"image,omitempty"`
	Thumb     string     `json:"thumb,omitempty"`
}

type CommentInfo struct {
	ID        uint64   `json:"id"`
	Text      string   `json:"text"`
	CreatedAt int64    `json:"created_at"`
	Author    UserInfo `json:"author"`
}

type PageInfo struct {
	Posts       []PostInfo `json:"posts"`
	Number      int        `json:"number"`
	TotalPages  int        `json:"total_pages"`
	Count       int64      `json:"count"`
	HasNext     bool       `json:"has_next"`
	HasPrevious bool       `json:"has_previous"`
	Next        int        `json:"next,omitempty"`
	Previous    int        `json:"previous,omitempty"`
}

func userInfo(u *models.User) UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, Name: u.Name}
}

func groupInfo(g *models.Group) *GroupInfo {
	if g == nil {
		return nil
	}
	return &GroupInfo{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func postInfo(p *models.Post) PostInfo {
	result := PostInfo{
		ID:        p.ID,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
		Author:    userInfo(&p.Author),
		Group:     groupInfo(p.Group),
	}
	if p.Image != "" {
		result.Image = mediaURL + p.Image
		result.Thumb = mediaURL + processing.ThumbPath(p.Image)
	}
	return result
}

func commentInfo(c *models.Comment) CommentInfo {
	return CommentInfo{ID: c.ID, Text: c.Text, CreatedAt: c.CreatedAt, Author: userInfo(&c.Author)}
}

func pageInfo(page *feed.Page) PageInfo {
	result := PageInfo{
		Posts:       make([]PostInfo, 0, len(page.Posts)),
		Number:      page.Number,
		TotalPages:  page.TotalPages,
		Count:       page.Count,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
		Next:        page.NextNumber(),
		Previous:    page.PreviousNumber(),
	}
	for i := range page.Posts {
		result.Posts = append(result.Posts, postInfo(&page.Posts[i]))
	}
	return result
}
