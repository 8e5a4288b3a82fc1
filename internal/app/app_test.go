package app

import (
	"errors"
	"testing"

	"github.com/dshills/overkey/internal/dispatch"
	"github.com/dshills/overkey/internal/input"
	"github.com/dshills/overkey/internal/input/action"
	"github.com/dshills/overkey/internal/input/key"
	"github.com/dshills/overkey/internal/input/source"
)

// newStepApp wires an App around a scripted source, enough to drive
// the run loop's per-sequence step directly. The base lookup binds F1
// and F2 to the recording boundary commands.
func newStepApp(t *testing.T) *App {
	t.Helper()

	eng, err := input.New(input.Options{
		Reader: source.NewGuard(source.NewScript(), key.MustParseSequence("C-g")),
		Logger: NullLogger,
	})
	if err != nil {
		t.Fatalf("input.New() error = %v", err)
	}
	if err := eng.RegisterCommands(); err != nil {
		t.Fatalf("RegisterCommands() error = %v", err)
	}

	a := &App{log: NullLogger, engine: eng}
	base := func(seq *key.Sequence) (action.Action, bool) {
		switch seq.Describe() {
		case "F1":
			return action.Command("start-recording"), true
		case "F2":
			return action.Command("end-recording"), true
		}
		return action.Action{}, false
	}
	a.resolver = dispatch.NewResolver(eng.Registry(), eng.Commands(), base, a.play)
	return a
}

func TestStepExcludesRecordingBoundaryKeys(t *testing.T) {
	a := newStepApp(t)

	for _, s := range []string{"F1", "a", "b", "F2"} {
		if err := a.step(key.MustParseSequence(s)); err != nil && !errors.Is(err, dispatch.ErrUnbound) {
			t.Fatalf("step(%s) error = %v", s, err)
		}
	}
	if a.engine.Recording() {
		t.Fatal("recording session still open after end keystroke")
	}

	m, err := a.engine.Store().Get("macro-1")
	if err != nil {
		t.Fatalf("Get(macro-1) error = %v", err)
	}
	if got := m.Keys.Describe(); got != "a b" {
		t.Errorf("recorded macro = %q, want %q", got, "a b")
	}

	// Replaying must not re-enter the recording commands.
	if err := a.play(m.Keys); err != nil {
		t.Errorf("replaying recorded macro: %v", err)
	}
}

func TestStepExcludesAbortKeystroke(t *testing.T) {
	a := newStepApp(t)
	if err := a.engine.Commands().Register("stop", func() error {
		a.engine.AbortRecording()
		return nil
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	a.resolver = dispatch.NewResolver(a.engine.Registry(), a.engine.Commands(),
		func(seq *key.Sequence) (action.Action, bool) {
			if seq.Describe() == "F3" {
				return action.Command("stop"), true
			}
			return action.Action{}, false
		}, a.play)

	if _, err := a.engine.StartRecording(); err != nil {
		t.Fatalf("StartRecording() error = %v", err)
	}
	if err := a.step(key.MustParseSequence("F3")); err != nil {
		t.Fatalf("step(F3) error = %v", err)
	}
	if a.engine.Recording() {
		t.Fatal("recording session still open after abort")
	}
	if a.engine.Store().Len() != 0 {
		t.Errorf("store holds %d macros after abort, want 0", a.engine.Store().Len())
	}
}
