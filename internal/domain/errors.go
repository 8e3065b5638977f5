package domain

import "errors"

// Domain errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInvalidID           = errors.New("invalid id")
	ErrFileNotFound        = errors.New("file not found")
	ErrInvalidToken        = errors.New("invalid token")
	ErrEmptyGeneration     = errors.New("empty generation result")
)
