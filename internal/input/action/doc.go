// Package action defines the values overlays bind key sequences to.
//
// An Action is a tagged union of three bindable variants — a named
// command, a recorded macro, and a raw key entry — plus an Unset
// tombstone used to shadow bindings without deleting map entries.
// The Registry resolves named commands at dispatch time.
package action
