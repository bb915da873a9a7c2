package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrDuplicateUsername      = errors.New("username already exists")
	ErrDuplicateSlug          = errors.New("slug already exists")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidInput           = errors.New("invalid input")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrAuthenticationRequired = errors.New("authentication required")
)
