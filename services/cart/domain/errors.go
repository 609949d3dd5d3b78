package domain

import "errors"

// Sentinel errors for the cart domain. Use errors.Is() to check these.
var (
	// ErrInvalidInput indicates a required field is missing or malformed
	// (absent dish, blank owner, negative price). Rejected before any mutation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidQuantity indicates a requested line quantity of zero or less.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrItemNotFound indicates the referenced dish has no line in the cart.
	ErrItemNotFound = errors.New("item not found in cart")

	// ErrArithmeticOverflow indicates a price or quantity computation exceeded
	// the representable range.
	ErrArithmeticOverflow = errors.New("cannot calculate price of items")

	// ErrEmptyCartOrder indicates an order was requested for a cart with no lines.
	ErrEmptyCartOrder = errors.New("cannot place order for an empty cart")

	// ErrCartNotFound indicates no cart record exists for the owner, either
	// because none was saved or because its TTL elapsed.
	ErrCartNotFound = errors.New("cart not found")

	// ErrStoreCorruption indicates a stored cart record could not be decoded
	// into a valid aggregate.
	ErrStoreCorruption = errors.New("stored cart is corrupted")

	// ErrPublishFailure indicates an outbound cart event could not be sent.
	ErrPublishFailure = errors.New("failed to publish cart event")
)
