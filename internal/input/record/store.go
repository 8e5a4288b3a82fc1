package record

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dshills/overkey/internal/input/key"
)

// Macro is a named, finished recording.
type Macro struct {
	// Name is the store-unique macro name.
	Name string

	// Keys is the recorded key sequence.
	Keys *key.Sequence

	// CreatedAt is when the recording finished.
	CreatedAt time.Time
}

// Store holds finished macros by name and remembers which one was
// recorded most recently.
type Store struct {
	mu     sync.Mutex
	macros map[string]Macro
	last   string
	serial int
}

// NewStore creates an empty macro store.
func NewStore() *Store {
	return &Store{macros: make(map[string]Macro)}
}

// Save stores a macro under the given name, replacing any previous
// recording with that name.
func (s *Store) Save(name string, keys *key.Sequence) (Macro, error) {
	if name == "" {
		return Macro{}, fmt.Errorf("record: macro name is empty")
	}
	if keys.IsEmpty() {
		return Macro{}, ErrEmptyRecording
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := Macro{Name: name, Keys: keys.Clone(), CreatedAt: time.Now()}
	s.macros[name] = m
	s.last = name
	return m, nil
}

// SaveNext stores a macro under the next generated name ("macro-1",
// "macro-2", ...), skipping names already taken.
func (s *Store) SaveNext(keys *key.Sequence) (Macro, error) {
	if keys.IsEmpty() {
		return Macro{}, ErrEmptyRecording
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var name string
	for {
		s.serial++
		name = fmt.Sprintf("macro-%d", s.serial)
		if _, taken := s.macros[name]; !taken {
			break
		}
	}
	m := Macro{Name: name, Keys: keys.Clone(), CreatedAt: time.Now()}
	s.macros[name] = m
	s.last = name
	return m, nil
}

// Get returns the macro with the given name.
func (s *Store) Get(name string) (Macro, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.macros[name]
	if !ok {
		return Macro{}, fmt.Errorf("%w: %q", ErrUnknownMacro, name)
	}
	return m, nil
}

// Remove deletes a macro. Removing the last-recorded macro clears the
// last-recorded marker.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.macros[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMacro, name)
	}
	delete(s.macros, name)
	if s.last == name {
		s.last = ""
	}
	return nil
}

// Names returns all macro names, sorted.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.macros))
	for name := range s.macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored macros.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.macros)
}

// LastRecorded returns the most recently recorded macro, if any.
func (s *Store) LastRecorded() (Macro, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == "" {
		return Macro{}, false
	}
	m, ok := s.macros[s.last]
	return m, ok
}

// SetLastRecorded marks an existing macro as the most recently
// recorded one.
func (s *Store) SetLastRecorded(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.macros[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMacro, name)
	}
	s.last = name
	return nil
}

// snapshot returns all macros plus the last-recorded name, for
// persistence.
func (s *Store) snapshot() ([]Macro, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Macro, 0, len(s.macros))
	for _, m := range s.macros {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, s.last
}

// replace swaps in a loaded macro set, for persistence.
func (s *Store) replace(macros []Macro, last string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.macros = make(map[string]Macro, len(macros))
	for _, m := range macros {
		if m.Name == "" || m.Keys.IsEmpty() {
			continue
		}
		s.macros[m.Name] = m
	}
	if _, ok := s.macros[last]; ok {
		s.last = last
	} else {
		s.last = ""
	}
}
