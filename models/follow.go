package models

import (
	"blog/db"
	"fmt"

	"gorm.io/gorm/clause"
)

// Follow is a directed edge: User follows Author
type Follow struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UserID    uint64 `gorm:"not null;index:uniq_user_author,priority:1,unique"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint64 `gorm:"not null;index:uniq_user_author,priority:2,unique;index"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (f Follow) String() string {
	return fmt.Sprintf("Follower: %s (%d); Following to: %s (%d)",
		f.User.Username, f.User.ID, f.Author.Username, f.Author.ID)
}

// FollowAuthor adds the edge follower -> author. Following yourself and following twice are both no-ops
func FollowAuthor(followerID, authorID uint64) error {
	if followerID == authorID {
		return nil
	}
	err := db.Instance.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Follow{UserID: followerID, AuthorID: authorID}).Error
	if err != nil && !db.IsDuplicateKey(err) {
		return fmt.Errorf("follow %d -> %d: %w", followerID, authorID, err)
	}
	return nil
}

// UnfollowAuthor removes the edge, which must exist
func UnfollowAuthor(followerID, authorID uint64) error {
	result := db.Instance.Where("user_id = ? AND author_id = ?", followerID, authorID).Delete(&Follow{})
	if result.Error != nil {
		return fmt.Errorf("unfollow %d -> %d: %w", followerID, authorID, result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: "follow", Key: fmt.Sprintf("%d->%d", followerID, authorID)}
	}
	return nil
}

func IsFollowing(followerID, authorID uint64) (bool, error) {
	var count int64
	err := db.Instance.Model(&Follow{}).
		Where("user_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error
	return count > 0, err
}

// FollowerIDs returns the IDs of everyone following the author
func FollowerIDs(authorID uint64) (ids []uint64, err error) {
	err = db.Instance.Model(&Follow{}).Where("author_id = ?", authorID).Pluck("user_id", &ids).Error
	return
}
