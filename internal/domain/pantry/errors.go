package pantry

import "errors"

var (
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidHaveState = errors.New("haveState must be 'have' or 'dont_have'")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrItemNotFound     = errors.New("pantry item not found")
)
