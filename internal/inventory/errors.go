package inventory

import "errors"

// Domain errors shared by the store and the service layer. Handlers
// translate them to HTTP status codes.
var (
	// ErrNotFound is returned when a record id or name matches nothing.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateBin is returned when a bin name collides with an existing
	// bin, compared case-insensitively.
	ErrDuplicateBin = errors.New("bin name already exists")

	// ErrAlreadySold is returned when selling an item whose status is
	// already sold. The sold transition is terminal.
	ErrAlreadySold = errors.New("item already sold")
)
