package key

import (
	"strings"
)

// Sequence represents a series of key events forming one bindable unit.
// Examples: "x", "C-c p", "F5".
type Sequence struct {
	// Events contains the key events in order.
	Events []Event
}

// NewSequence creates an empty key sequence.
func NewSequence() *Sequence {
	return &Sequence{Events: make([]Event, 0, 4)}
}

// From creates a sequence from the given events.
func From(events ...Event) *Sequence {
	return &Sequence{Events: events}
}

// Len returns the number of events in the sequence.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Events)
}

// IsEmpty returns true if the sequence has no events.
func (s *Sequence) IsEmpty() bool {
	return s.Len() == 0
}

// Add appends an event to the sequence.
func (s *Sequence) Add(event Event) {
	s.Events = append(s.Events, event)
}

// Describe returns the canonical textual description of the sequence:
// the descriptions of its events joined by spaces. Binding tables and
// the sequence-equality predicate both operate on this form.
func (s *Sequence) Describe() string {
	if s == nil || len(s.Events) == 0 {
		return ""
	}
	parts := make([]string, len(s.Events))
	for i, e := range s.Events {
		parts[i] = e.Describe()
	}
	return strings.Join(parts, " ")
}

// String returns the canonical description.
func (s *Sequence) String() string {
	return s.Describe()
}

// SameSequence reports whether two sequences have the same canonical
// description. This is the host-facing equality predicate: sequences
// built from different internal encodings of equivalent keystrokes
// still compare equal.
func SameSequence(a, b *Sequence) bool {
	if a == nil || b == nil {
		return a.Len() == 0 && b.Len() == 0
	}
	return a.Describe() == b.Describe()
}

// Clone returns a copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	events := make([]Event, len(s.Events))
	copy(events, s.Events)
	return &Sequence{Events: events}
}

// Reversed returns a new sequence with the events in opposite order.
func (s *Sequence) Reversed() *Sequence {
	if s == nil {
		return nil
	}
	events := make([]Event, len(s.Events))
	for i, e := range s.Events {
		events[len(s.Events)-1-i] = e
	}
	return &Sequence{Events: events}
}

// EndsWith reports whether the sequence's trailing events describe the
// same keystrokes as suffix, in order.
func (s *Sequence) EndsWith(suffix *Sequence) bool {
	if suffix.Len() == 0 {
		return false
	}
	if suffix.Len() > s.Len() {
		return false
	}
	offset := s.Len() - suffix.Len()
	for i, e := range suffix.Events {
		if !SameKey(s.Events[offset+i], e) {
			return false
		}
	}
	return true
}

// DropLast returns a new sequence without the final n events.
func (s *Sequence) DropLast(n int) *Sequence {
	if s == nil || n <= 0 {
		return s.Clone()
	}
	if n >= len(s.Events) {
		return NewSequence()
	}
	events := make([]Event, len(s.Events)-n)
	copy(events, s.Events[:len(s.Events)-n])
	return &Sequence{Events: events}
}
