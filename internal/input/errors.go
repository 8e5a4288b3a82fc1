package input

import "errors"

var (
	// ErrInvalidAction indicates an acquired action that fails the bind
	// variant's type check. Nothing is written.
	ErrInvalidAction = errors.New("input: action does not match bind variant")

	// ErrNoEditSession indicates unset-key outside an editing session.
	ErrNoEditSession = errors.New("input: no editing session active")

	// ErrNoLastRecorded indicates bind-last-recorded with nothing
	// recorded yet.
	ErrNoLastRecorded = errors.New("input: no macro recorded yet")

	// ErrUnknownChain indicates a bind variant whose strategy chain is
	// not configured.
	ErrUnknownChain = errors.New("input: unknown strategy chain")
)
