package key

import (
	"strings"
	"time"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{
		Key:       k,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified returns true if any modifier other than an implicit Shift
// is pressed. For character events Shift is part of the character.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Describe returns the canonical textual description of the event.
// Examples: "a", "Space", "C-x", "C-A-Del", "Esc".
//
// The description is the equality domain for the whole system: two
// events with different internal encodings of the same keystroke
// describe identically, and binding tables key their entries on it.
func (e Event) Describe() string {
	var parts []string

	if e.Modifiers.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Modifiers.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Modifiers.Has(ModMeta) {
		parts = append(parts, "M")
	}
	// Shift is only described for special keys; for characters it is
	// already folded into the rune.
	if e.Modifiers.Has(ModShift) && !e.IsRune() {
		parts = append(parts, "S")
	}

	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.Key == KeyRune:
		r := e.Rune
		// Ctrl-modified letters normalize to lowercase.
		if e.Modifiers.Has(ModCtrl) {
			r = unicode.ToLower(r)
		}
		parts = append(parts, string(r))
	default:
		parts = append(parts, e.Key.String())
	}

	return strings.Join(parts, "-")
}

// String returns the canonical description.
func (e Event) String() string {
	return e.Describe()
}

// SameKey reports whether two events describe the same keystroke.
// Timestamps and encoding differences are ignored.
func SameKey(a, b Event) bool {
	return a.Describe() == b.Describe()
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsEnter returns true if this is the Enter key with no modifiers.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}

// IsBackspace returns true if this is Backspace with no modifiers.
func (e Event) IsBackspace() bool {
	return e.Key == KeyBackspace && e.Modifiers == ModNone
}
