package source

import (
	"sync"

	"github.com/dshills/overkey/internal/input/key"
)

// Script is a deterministic Source fed from queued input. It backs
// tests and scripted drivers: each Read pops the next queued item, and
// an empty queue yields ErrExhausted.
type Script struct {
	mu      sync.Mutex
	events  []key.Event
	seqs    []*key.Sequence
	names   []string
	choices []int
}

// NewScript creates an empty scripted source.
func NewScript() *Script {
	return &Script{}
}

// QueueEvents appends key events to the event queue.
func (s *Script) QueueEvents(events ...key.Event) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return s
}

// QueueSequences appends key sequences to the sequence queue.
func (s *Script) QueueSequences(seqs ...*key.Sequence) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs = append(s.seqs, seqs...)
	return s
}

// QueueNames appends names to the name queue.
func (s *Script) QueueNames(names ...string) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, names...)
	return s
}

// QueueChoices appends selections to the choice queue.
func (s *Script) QueueChoices(choices ...int) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.choices = append(s.choices, choices...)
	return s
}

// ReadEvent pops the next queued key event.
func (s *Script) ReadEvent(string) (key.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return key.Event{}, ErrExhausted
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

// ReadSequence pops the next queued key sequence.
func (s *Script) ReadSequence(string) (*key.Sequence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.seqs) == 0 {
		return nil, ErrExhausted
	}
	seq := s.seqs[0]
	s.seqs = s.seqs[1:]
	return seq, nil
}

// ReadName pops the next queued name.
func (s *Script) ReadName(string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.names) == 0 {
		return "", ErrExhausted
	}
	name := s.names[0]
	s.names = s.names[1:]
	return name, nil
}

// ReadChoice pops the next queued selection.
func (s *Script) ReadChoice(string, []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.choices) == 0 {
		return 0, ErrExhausted
	}
	c := s.choices[0]
	s.choices = s.choices[1:]
	return c, nil
}

// EventsLeft returns the number of unread queued events.
func (s *Script) EventsLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}
