package source

import (
	"github.com/dshills/overkey/internal/input/key"
)

// Source supplies interactive input during binding acquisition. The
// engine never talks to a terminal directly; it asks a Source for the
// next keystroke, key sequence, name, or choice, and the Source decides
// how to obtain it.
type Source interface {
	// ReadEvent blocks until the next key event.
	ReadEvent(prompt string) (key.Event, error)

	// ReadSequence blocks until a complete key sequence has been
	// entered.
	ReadSequence(prompt string) (*key.Sequence, error)

	// ReadName reads a line of text, such as a command name.
	ReadName(prompt string) (string, error)

	// ReadChoice presents options and returns the selected index.
	ReadChoice(prompt string, options []string) (int, error)
}
