package pricing

import "errors"

var (
	// ErrInvalidRequest is returned when a price request fails validation
	ErrInvalidRequest = errors.New("invalid pricing request")
	// ErrConfigNotFound is returned when product, pricing profile or materials are missing
	ErrConfigNotFound = errors.New("pricing configuration not found")
	// ErrNoFit is returned when no machine can hold at least one item
	ErrNoFit = errors.New("item does not fit on any machine")
	// ErrInvalidImposition is returned when cost is requested for an unusable imposition
	ErrInvalidImposition = errors.New("invalid imposition")
	// ErrNoResults is returned when no material × quantity pair could be priced
	ErrNoResults = errors.New("no price could be calculated for the requested size and materials")
)
