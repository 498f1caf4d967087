package domain

import "errors"

var (
	// ErrDuplicateEmail is returned when registration hits the unique index on email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password so that
	// login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken covers malformed, tampered, expired and wrong-type tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUserNotFound is returned when a token's subject no longer resolves to a user.
	ErrUserNotFound = errors.New("user not found")

	// ErrHashFormat means a stored password hash could not be parsed. This is data
	// corruption, not a failed login, and must surface as a server-side fault.
	ErrHashFormat = errors.New("malformed password hash")
)
