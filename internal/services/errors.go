package services

import "errors"

// Service-level errors; store errors live in models
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidInput    = errors.New("invalid input")
)
