package models

import "errors"

// Errors shared by the stores and the services. Callers match them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrAlreadySwiped   = errors.New("already swiped on this profile")
	ErrEmailTaken      = errors.New("email already registered")
)
