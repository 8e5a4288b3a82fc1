package obtain

import "errors"

var (
	// ErrUndefinedRank indicates a repeat argument selecting a rank
	// beyond the chain's length. No key is read.
	ErrUndefinedRank = errors.New("obtain: undefined repeat argument")

	// ErrUnknownStrategy indicates a chain configured with a strategy
	// name that is not built in.
	ErrUnknownStrategy = errors.New("obtain: unknown strategy")

	// ErrNoBinding indicates a key sequence with no existing binding to
	// reuse.
	ErrNoBinding = errors.New("obtain: key sequence has no binding")

	// ErrNoRecordings indicates there are no recorded macros to choose
	// from.
	ErrNoRecordings = errors.New("obtain: no recorded macros")
)
