package auth

import "blog/models"

// Identity is the acting user of a request. The zero value is an anonymous visitor
type Identity struct {
	UserID   uint64
	Username string
	IsAdmin  bool
}

var Anonymous = Identity{}

func IdentityOf(u *models.User) Identity {
	return Identity{
		UserID:   u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

func (i Identity) Authenticated() bool {
	return i.UserID != 0
}
