package source

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/overkey/internal/input/key"
)

// DefaultSequenceGap is the quiet period that ends a multi-key
// sequence read.
const DefaultSequenceGap = 600 * time.Millisecond

// Terminal is a Source backed by a tcell screen. It owns the screen's
// event stream while a read is in flight and paints prompts on the
// bottom row.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
	gap    time.Duration
}

// NewTerminal wraps an initialized tcell screen. The terminal starts
// pumping events immediately; call Close to stop.
func NewTerminal(screen tcell.Screen) *Terminal {
	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 16),
		quit:   make(chan struct{}),
		gap:    DefaultSequenceGap,
	}
	go screen.ChannelEvents(t.events, t.quit)
	return t
}

// SetSequenceGap overrides the quiet period ending a sequence read.
func (t *Terminal) SetSequenceGap(d time.Duration) {
	if d > 0 {
		t.gap = d
	}
}

// Close stops the event pump. The screen itself belongs to the caller.
func (t *Terminal) Close() {
	close(t.quit)
}

func (t *Terminal) prompt(msg string) {
	w, h := t.screen.Size()
	style := tcell.StyleDefault
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, h-1, ' ', nil, style)
	}
	for x, r := range msg {
		if x >= w {
			break
		}
		t.screen.SetContent(x, h-1, r, nil, style)
	}
	t.screen.Show()
}

func (t *Terminal) nextKey() (key.Event, bool) {
	for {
		raw, ok := <-t.events
		if !ok {
			return key.Event{}, false
		}
		ev, converted := convertEvent(raw)
		if converted {
			return ev, true
		}
	}
}

// ReadEvent blocks until the next key press.
func (t *Terminal) ReadEvent(prompt string) (key.Event, error) {
	if prompt != "" {
		t.prompt(prompt)
	}
	ev, ok := t.nextKey()
	if !ok {
		return key.Event{}, ErrExhausted
	}
	return ev, nil
}

// ReadSequence blocks for the first key, then keeps collecting until
// no further key arrives within the sequence gap.
func (t *Terminal) ReadSequence(prompt string) (*key.Sequence, error) {
	first, err := t.ReadEvent(prompt)
	if err != nil {
		return nil, err
	}
	seq := key.From(first)
	for {
		select {
		case raw, ok := <-t.events:
			if !ok {
				return seq, nil
			}
			if ev, converted := convertEvent(raw); converted {
				seq.Add(ev)
			}
		case <-time.After(t.gap):
			return seq, nil
		}
	}
}

// ReadName reads a line of text on the prompt row. Enter accepts,
// Backspace edits, Escape aborts.
func (t *Terminal) ReadName(prompt string) (string, error) {
	var buf []rune
	for {
		t.prompt(prompt + string(buf))
		ev, ok := t.nextKey()
		if !ok {
			return "", ErrExhausted
		}
		switch {
		case ev.IsEnter():
			return strings.TrimSpace(string(buf)), nil
		case ev.IsEscape():
			return "", ErrUserAbort
		case ev.IsBackspace():
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case ev.IsRune() && !ev.IsModified():
			buf = append(buf, ev.Rune)
		}
	}
}

// ReadChoice shows numbered options and reads a digit selection.
// Escape aborts.
func (t *Terminal) ReadChoice(prompt string, options []string) (int, error) {
	var b strings.Builder
	b.WriteString(prompt)
	for i, opt := range options {
		b.WriteString(" [")
		b.WriteRune(rune('1' + i))
		b.WriteString("] ")
		b.WriteString(opt)
	}
	for {
		t.prompt(b.String())
		ev, ok := t.nextKey()
		if !ok {
			return 0, ErrExhausted
		}
		if ev.IsEscape() {
			return 0, ErrUserAbort
		}
		if ev.IsRune() {
			idx := int(ev.Rune - '1')
			if idx >= 0 && idx < len(options) {
				return idx, nil
			}
		}
	}
}

// convertEvent maps a tcell event to a key event. Non-key events and
// unmapped keys report false.
func convertEvent(raw tcell.Event) (key.Event, bool) {
	ek, ok := raw.(*tcell.EventKey)
	if !ok {
		return key.Event{}, false
	}

	mods := convertMods(ek.Modifiers())

	if ek.Key() == tcell.KeyRune {
		return key.NewRuneEvent(ek.Rune(), mods), true
	}

	if k, ok := specialKeys[ek.Key()]; ok {
		return key.NewSpecialEvent(k, mods), true
	}

	// tcell reports Ctrl-letter chords as dedicated key codes in the
	// C0 range. Fold them back to rune plus Ctrl so they describe the
	// same as a decoded Ctrl event.
	if ek.Key() >= tcell.KeyCtrlA && ek.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + (ek.Key() - tcell.KeyCtrlA))
		return key.NewRuneEvent(r, mods|key.ModCtrl), true
	}
	if ek.Key() == tcell.KeyCtrlSpace {
		return key.NewRuneEvent(' ', mods|key.ModCtrl), true
	}

	return key.Event{}, false
}

// specialKeys maps tcell special keys to their canonical equivalents.
// Enter, Tab, and Backspace alias Ctrl codes in tcell; listing them
// here keeps them as named keys rather than Ctrl chords.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

func convertMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModMeta
	}
	return mods
}
