package model

import "errors"

var (
	// User related errors
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already in use")
	ErrAccountDisabled = errors.New("account disabled")

	// Credential related errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors
	ErrTokenInvalid = errors.New("token invalid")

	// Note related errors
	ErrNoteNotFound = errors.New("note not found")

	// Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
