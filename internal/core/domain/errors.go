package domain

import "errors"

var (
	ErrInvalidUser        = errors.New("invalid user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("no active session")
	ErrKeyNotFound        = errors.New("key not found")
)
