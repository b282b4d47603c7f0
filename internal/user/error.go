package user

import "errors"

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("email and password are required")
)

// Postgres unique_violation, used to map duplicate emails.
const pgUniqueViolation = "23505"
