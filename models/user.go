package models

import (
	"blog/db"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Username  string `gorm:"type:varchar(150);index:uniq_username,unique"`
	Name      string `gorm:"type:varchar(150)"`
	Password  string `gorm:"type:varchar(100)"`
	IsAdmin   bool   `gorm:"not null;default:false"`
}

func UserCreate(username, name, plainTextPassword string, isAdmin bool) (u User, err error) {
	u.Username = username
	u.Name = name
	u.IsAdmin = isAdmin
	if err = u.SetPassword(plainTextPassword); err != nil {
		return User{}, err
	}
	if err = db.Instance.Create(&u).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return User{}, &ConflictError{Field: "username", Value: username}
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (u *User) SetPassword(plainTextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// UserLogin returns the user only if the password matches
func UserLogin(username, plainTextPassword string) (u User, success bool) {
	if err := db.Instance.First(&u, "username = ?", username).Error; err != nil {
		return User{}, false
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) != nil {
		return User{}, false
	}
	return u, true
}

func UserByUsername(username string) (u User, err error) {
	err = db.Instance.First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, &NotFoundError{Entity: "user", Key: username}
	}
	return
}

func UserByID(id uint64) (u User, err error) {
	err = db.Instance.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, &NotFoundError{Entity: "user", Key: strconv.FormatUint(id, 10)}
	}
	return
}

// UserDelete removes the user together with everything it owns:
// posts (and their comments), own comments and follow edges in both directions
func UserDelete(id uint64) error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		posts := tx.Model(&Post{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("post_id IN (?) OR author_id = ?", posts, id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR author_id = ?", id, id).Delete(&Follow{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &NotFoundError{Entity: "user", Key: strconv.FormatUint(id, 10)}
		}
		return nil
	})
}

// EnsureAdmin creates the configured admin account unless it already exists
func EnsureAdmin(username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := UserByUsername(username)
	if err == nil {
		return nil
	}
	if !IsNotFound(err) {
		return err
	}
	_, err = UserCreate(username, username, password, true)
	return err
}
