package dynamo

import "errors"

// Domain errors for world operations. None of them are fatal: a failed
// operation leaves the world exactly as it was.
var (
	// ErrDuplicateID indicates a body with the same id is already registered.
	ErrDuplicateID = errors.New("dynamo: duplicate body id")

	// ErrAnchorExists indicates a second anchor was added.
	ErrAnchorExists = errors.New("dynamo: world already has an anchor")

	// ErrNotFound indicates an id that is not registered.
	ErrNotFound = errors.New("dynamo: body not found")

	// ErrInvalidBody indicates a body with missing id or non-positive mass/radius.
	ErrInvalidBody = errors.New("dynamo: invalid body")

	// ErrNoAnchor indicates an operation that needs the anchor ran without one.
	ErrNoAnchor = errors.New("dynamo: world has no anchor")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")
)
