package service

import "github.com/msomdec/yatube/internal/domain"

// CanCreate reports whether the principal may write new posts. Any signed-in
// user may.
func CanCreate(principal *domain.User) bool {
	return principal != nil
}

// CanEdit reports whether the principal may change the post. Only its
// author may.
func CanEdit(principal *domain.User, post *domain.Post) bool {
	return principal != nil && post != nil && principal.ID == post.AuthorID
}
