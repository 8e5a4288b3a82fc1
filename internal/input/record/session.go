package record

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/overkey/internal/input/key"
)

// Session is one in-progress recording. Keystrokes accumulate until
// End finalizes them into a sequence or Abort discards them.
//
// A session opened in direct mode keeps recording across interactions:
// the dispatcher feeds it every handled keystroke until the end marker
// arrives. A session opened for nested capture instead runs its own
// read loop via CaptureNested, suspending the caller.
type Session struct {
	mu     sync.Mutex
	active bool
	direct bool
	token  string
	keys   *key.Sequence
}

// NewSession creates an idle recording session.
func NewSession() *Session {
	return &Session{}
}

// Begin opens the session and returns its token. Direct mode means
// keystrokes arrive from the dispatcher rather than a nested read
// loop.
func (s *Session) Begin(direct bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return "", ErrAlreadyRecording
	}
	s.active = true
	s.direct = direct
	s.token = uuid.NewString()
	s.keys = key.NewSequence()
	return s.token, nil
}

// Record appends a keystroke to the open session. Keystrokes arriving
// while the session is idle are dropped.
func (s *Session) Record(ev key.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		s.keys.Add(ev)
	}
}

// End closes the session and returns the recorded sequence.
func (s *Session) End() (*key.Sequence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, ErrNotRecording
	}
	s.active = false
	s.token = ""
	keys := s.keys
	s.keys = nil
	return keys, nil
}

// Abort closes the session and discards everything recorded so far.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = false
	s.token = ""
	s.keys = nil
}

// Recording reports whether a session is open.
func (s *Session) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Direct reports whether the open session records dispatcher
// keystrokes.
func (s *Session) Direct() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active && s.direct
}

// Token returns the open session's token, or empty when idle.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Len returns the number of keystrokes recorded so far.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys.Len()
}
