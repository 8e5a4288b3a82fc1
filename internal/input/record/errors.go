package record

import "errors"

var (
	// ErrAlreadyRecording indicates a recording session is already open.
	ErrAlreadyRecording = errors.New("record: already recording")

	// ErrNotRecording indicates an operation that requires an open
	// recording session.
	ErrNotRecording = errors.New("record: no recording in progress")

	// ErrEmptyRecording indicates the session ended with no keys.
	ErrEmptyRecording = errors.New("record: recording is empty")

	// ErrUnknownMacro indicates a lookup for a macro the store does not
	// hold.
	ErrUnknownMacro = errors.New("record: unknown macro")
)
