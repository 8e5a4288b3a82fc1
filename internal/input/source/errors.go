package source

import "errors"

var (
	// ErrUserAbort indicates the user pressed the quit key during an
	// interactive read. Callers unwind the whole acquisition and leave
	// no partial state behind.
	ErrUserAbort = errors.New("source: aborted by quit key")

	// ErrExhausted indicates a scripted source ran out of queued input.
	ErrExhausted = errors.New("source: scripted input exhausted")
)
