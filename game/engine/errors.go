package engine

import "errors"

// Errors
var (
	ErrOutOfRange      = errors.New("index out of range")
	ErrInvalidSlot     = errors.New("invalid slot")
	ErrInvalidEntity   = errors.New("invalid entity")
	ErrUnknownTile     = errors.New("unknown tile type")
	ErrInvalidRotation = errors.New("invalid rotation")
	ErrInvalidMove     = errors.New("invalid move")
	ErrBadLayout       = errors.New("bad layout")
	ErrNoSolution      = errors.New("no valid rotation assignment")
)
