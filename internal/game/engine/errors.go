package engine

import "errors"

// Failure taxonomy for engine operations. Operations return these sentinels
// (wrapped with context) rather than panicking; the presentation layer maps
// them to user-facing messages with errors.Is.
var (
	// ErrNotFound indicates a missing player, battle, or catalog entry.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState indicates an operation that is not legal in the
	// player's current state, such as hunting while already in battle.
	ErrInvalidState = errors.New("invalid state")
	// ErrInsufficientResource indicates missing gold, ingredients, or an
	// unmet skill-level gate.
	ErrInsufficientResource = errors.New("insufficient resource")
	// ErrTransient indicates the persistence gateway failed; the composite
	// operation was aborted with no partial commit.
	ErrTransient = errors.New("transient storage failure")
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
