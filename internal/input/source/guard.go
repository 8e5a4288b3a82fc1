package source

import (
	"sync"

	"github.com/dshills/overkey/internal/input/key"
)

// Guard wraps a Source and watches every keystroke for the configured
// quit key. A quit press surfaces as ErrUserAbort, which callers
// propagate until the whole interaction unwinds.
//
// The watch can be suppressed, for interactions that need to capture
// the quit key literally.
type Guard struct {
	mu         sync.Mutex
	src        Source
	quit       *key.Sequence
	suppressed bool
}

// NewGuard wraps src, aborting reads on the quit sequence. A nil or
// empty quit disables the watch entirely.
func NewGuard(src Source, quit *key.Sequence) *Guard {
	return &Guard{src: src, quit: quit.Clone()}
}

// SetQuit replaces the watched quit sequence.
func (g *Guard) SetQuit(quit *key.Sequence) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.quit = quit.Clone()
}

// Suppress turns the quit watch off or back on.
func (g *Guard) Suppress(off bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.suppressed = off
}

func (g *Guard) quitEvent(ev key.Event) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.suppressed && g.quit.Len() == 1 && key.SameKey(ev, g.quit.Events[0])
}

func (g *Guard) quitSequence(seq *key.Sequence) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.suppressed && g.quit.Len() > 0 && key.SameSequence(seq, g.quit)
}

// ReadEvent reads one key event, returning ErrUserAbort on the quit
// key.
func (g *Guard) ReadEvent(prompt string) (key.Event, error) {
	ev, err := g.src.ReadEvent(prompt)
	if err != nil {
		return key.Event{}, err
	}
	if g.quitEvent(ev) {
		return key.Event{}, ErrUserAbort
	}
	return ev, nil
}

// ReadSequence reads one key sequence, returning ErrUserAbort when it
// matches the quit sequence.
func (g *Guard) ReadSequence(prompt string) (*key.Sequence, error) {
	seq, err := g.src.ReadSequence(prompt)
	if err != nil {
		return nil, err
	}
	if g.quitSequence(seq) {
		return nil, ErrUserAbort
	}
	return seq, nil
}

// ReadName reads a line of text from the underlying source.
func (g *Guard) ReadName(prompt string) (string, error) {
	return g.src.ReadName(prompt)
}

// ReadChoice reads a selection from the underlying source.
func (g *Guard) ReadChoice(prompt string, options []string) (int, error) {
	return g.src.ReadChoice(prompt, options)
}
