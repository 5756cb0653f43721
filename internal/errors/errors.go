package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")

	// ErrSessionNotFound means no live session holds the presented access token.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidSession means a session was found but its owner, token or
	// fingerprint does not match the presented credentials.
	ErrInvalidSession = errors.New("the data is invalid")

	// ErrInvalidLogoutMode means the requested logout mode is unknown, or a
	// forced logout asked for anything other than "all".
	ErrInvalidLogoutMode = errors.New("invalid logout mode")
)
