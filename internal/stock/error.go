package stock

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrNegativeStock   = errors.New("stock cannot be negative")
)

// InsufficientStockError is a business-rule rejection for a single product.
// It carries the live availability so callers can show a usable reason.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: only %d available", e.ProductName, e.Available)
}

// InsufficientError reports every product that blocked a checkout attempt.
type InsufficientError struct {
	Products []string
}

func (e *InsufficientError) Error() string {
	return "insufficient stock: " + strings.Join(e.Products, ", ")
}
