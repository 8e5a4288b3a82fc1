// Package source abstracts interactive input for binding acquisition.
//
// The Source interface reads key events, key sequences, names, and
// choices. Terminal implements it over a tcell screen; Script is a
// deterministic queue for tests and scripted drivers. Guard wraps any
// Source and turns the configured quit key into ErrUserAbort, so every
// interaction can be cancelled uniformly.
package source
