package auth

import (
	"blog/models"
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const userIdKey = "id"

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(user *models.User) error {
	s.Set(userIdKey, user.ID)
	return s.Save()
}

func (s *Session) LogoutUser() {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = s.Save()
}

// Identity reloads the logged in user from the DB, Anonymous if the account is gone
func (s *Session) Identity() Identity {
	id, ok := s.Get(userIdKey).(uint64)
	if !ok || id == 0 {
		return Anonymous
	}
	user, err := models.UserByID(id)
	if err != nil {
		if !models.IsNotFound(err) {
			log.Printf("Session user %d: %v", id, err)
		}
		return Anonymous
	}
	return IdentityOf(&user)
}
