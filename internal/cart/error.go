package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrProductNotFound = errors.New("product not found")
)
