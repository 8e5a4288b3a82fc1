package overlay

import "errors"

// Registry errors.
var (
	// ErrInvalidArgument indicates a malformed or empty key sequence.
	ErrInvalidArgument = errors.New("overlay: invalid key sequence")

	// ErrInvalidDestination indicates an explicit destination overlay
	// that does not match what the registry currently holds for its
	// identity.
	ErrInvalidDestination = errors.New("overlay: destination overlay is not currently bound")

	// ErrNotRegistered indicates an operation on an overlay the
	// registry has never seen.
	ErrNotRegistered = errors.New("overlay: overlay not registered")

	// ErrUnknownOverlay indicates a lookup for an identity outside the
	// registry.
	ErrUnknownOverlay = errors.New("overlay: no overlay with that identity")
)
