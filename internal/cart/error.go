package cart

import "errors"

var (
	ErrMissingProduct  = errors.New("product id is required")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)
