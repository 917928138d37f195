package domain

import "errors"

// Sentinel errors surfaced by repositories and services. Handlers map these
// to field-tagged responses.
var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
	ErrUnknownEmail  = errors.New("no account for email")
	ErrWrongPassword = errors.New("password mismatch")
	ErrInvalidID     = errors.New("invalid id format")
)
