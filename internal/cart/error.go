package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	ErrMissingItemID   = errors.New("cart item id is required")

	// -- Resource State --
	ErrItemNotFound = errors.New("cart item not found")
)
