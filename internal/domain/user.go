package domain

import "errors"

// User is an authenticated person allowed to use the ledger.
type User struct {
	Username string
}

// Credential is a configured username and its password. Password is either
// plain text or a bcrypt hash.
type Credential struct {
	Username string
	Password string
}

// Authentication errors
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUnknownUser     = errors.New("unknown username")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
)
