package record

import (
	"github.com/dshills/overkey/internal/input/key"
	"github.com/dshills/overkey/internal/input/source"
)

// Reader is the blocking keystroke reader a nested capture consumes.
// *source.Guard satisfies it.
type Reader interface {
	ReadEvent(prompt string) (key.Event, error)
}

// CaptureNested runs a nested recording loop: the caller's interaction
// is suspended while keystrokes are read and accumulated, and resumes
// once the end marker arrives. The end marker itself is stripped from
// the result.
//
// A quit key surfaces from the reader as source.ErrUserAbort; the
// partial recording is discarded and the error propagates so the
// enclosing interaction unwinds too.
func CaptureNested(reader Reader, end *key.Sequence, prompt string) (*key.Sequence, error) {
	if end.IsEmpty() {
		return nil, ErrNotRecording
	}

	seq := key.NewSequence()
	for {
		ev, err := reader.ReadEvent(prompt)
		if err != nil {
			return nil, err
		}
		seq.Add(ev)
		if seq.EndsWith(end) {
			return seq.DropLast(end.Len()), nil
		}
	}
}

var _ Reader = (*source.Guard)(nil)
