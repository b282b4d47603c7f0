package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyName       = errors.New("product name cannot be empty")
	ErrNameTooLong     = errors.New("product name is too long")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrUnauthorized    = errors.New("unauthorized")
)

// MaxNameLength bounds free-text names at the core boundary.
const MaxNameLength = 200
