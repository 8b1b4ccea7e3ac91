package auth

import "blog/models"

// CanEdit is true only for the author of the post
func CanEdit(identity Identity, post *models.Post) bool {
	return identity.Authenticated() && post != nil && identity.UserID == post.AuthorID
}

// CanComment is true for anyone logged in
func CanComment(identity Identity) bool {
	return identity.Authenticated()
}

// CanAdminister covers group management and clearing caches
func CanAdminister(identity Identity) bool {
	return identity.Authenticated() && identity.IsAdmin
}
