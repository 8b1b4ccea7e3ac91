package feed

import (
	"blog/auth"
	"fmt"
)

type Kind uint8

const (
	KindAll Kind = iota
	KindGroup
	KindAuthor
	KindFollowed
)

// Scope selects the posts that make up a feed
type Scope struct {
	Kind     Kind
	Slug     string        // KindGroup
	Username string        // KindAuthor
	Identity auth.Identity // KindFollowed
}

func All() Scope {
	return Scope{Kind: KindAll}
}

func ByGroup(slug string) Scope {
	return Scope{Kind: KindGroup, Slug: slug}
}

func ByAuthor(username string) Scope {
	return Scope{Kind: KindAuthor, Username: username}
}

func ByFollowedAuthors(identity auth.Identity) Scope {
	return Scope{Kind: KindFollowed, Identity: identity}
}

func (s Scope) String() string {
	switch s.Kind {
	case KindGroup:
		return "group:" + s.Slug
	case KindAuthor:
		return "author:" + s.Username
	case KindFollowed:
		return fmt.Sprintf("followed:%d", s.Identity.UserID)
	}
	return "all"
}
