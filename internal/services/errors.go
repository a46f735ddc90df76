package services

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrUsernameTaken          = errors.New("username already taken")
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrNotFound               = errors.New("not found")
	ErrForbidden              = errors.New("forbidden")
)
