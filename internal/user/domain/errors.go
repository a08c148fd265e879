package domain

import "errors"

var (
	ErrNotFound        = errors.New("user_not_found")
	ErrUsernameTaken   = errors.New("username_taken")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrInvalidUsername = errors.New("invalid_username")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotAdmin        = errors.New("admin_role_required")
	ErrSelfDelete      = errors.New("self_delete_forbidden")
	ErrLastAdmin       = errors.New("last_admin_protected")
)
