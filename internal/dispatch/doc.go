// Package dispatch routes key sequences to actions through the
// overlay registry's live view, falling through to the host's base
// bindings, and executes what it resolves.
package dispatch
