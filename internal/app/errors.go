package app

import "errors"

// ErrQuit signals a clean, user-requested shutdown of the run loop.
var ErrQuit = errors.New("app: quit")
