package services

import "errors"

// Error variables
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidImage       = errors.New("upload a valid image")
)
