package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCode indicates an entered discount code that does not
	// resolve to an applicable discount. User-correctable: callers still
	// get a priced cart without the code.
	ErrInvalidCode = errors.New("invalid discount code")
	// ErrInvalidTransition indicates a disallowed order status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidInput indicates a request that fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUsageCapExceeded indicates a discount whose usage cap was
	// consumed between evaluation and order placement.
	ErrUsageCapExceeded = errors.New("discount usage cap exceeded")
)
