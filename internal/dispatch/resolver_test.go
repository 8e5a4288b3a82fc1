package dispatch

import (
	"errors"
	"testing"

	"github.com/dshills/overkey/internal/input/action"
	"github.com/dshills/overkey/internal/input/key"
	"github.com/dshills/overkey/internal/input/overlay"
)

func activeOverlay(t *testing.T, reg *overlay.Registry) *overlay.Overlay {
	t.Helper()
	o := reg.Allocate()
	if err := reg.Register(o, ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.SetActiveState(o, true); err != nil {
		t.Fatalf("SetActiveState() error = %v", err)
	}
	return o
}

func TestResolveFrontFirstFirstMatch(t *testing.T) {
	reg := overlay.NewRegistry(8)
	low := activeOverlay(t, reg)
	high := activeOverlay(t, reg)
	reg.Enable()

	seq := key.MustParseSequence("C-c p")
	if err := reg.Bind(low, seq, action.Command("low")); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if err := reg.Bind(high, seq, action.Command("high")); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	r := NewResolver(reg, action.NewRegistry(), nil, nil)
	act, ok := r.Resolve(seq)
	if !ok || act.Command != "high" {
		t.Errorf("Resolve() = %v, %v, want high", act, ok)
	}
}

func TestResolveGatedBySwitch(t *testing.T) {
	reg := overlay.NewRegistry(8)
	o := activeOverlay(t, reg)

	seq := key.MustParseSequence("x")
	if err := reg.Bind(o, seq, action.Command("c")); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	base := func(s *key.Sequence) (action.Action, bool) {
		return action.Command("base"), true
	}
	r := NewResolver(reg, action.NewRegistry(), base, nil)

	// Switch off: overlays are skipped, base answers.
	act, ok := r.Resolve(seq)
	if !ok || act.Command != "base" {
		t.Errorf("Resolve() with switch off = %v, %v, want base", act, ok)
	}

	reg.Enable()
	act, ok = r.Resolve(seq)
	if !ok || act.Command != "c" {
		t.Errorf("Resolve() with switch on = %v, %v, want c", act, ok)
	}
}

func TestResolveTombstoneFallsToBase(t *testing.T) {
	reg := overlay.NewRegistry(8)
	low := activeOverlay(t, reg)
	high := activeOverlay(t, reg)
	reg.Enable()

	seq := key.MustParseSequence("x")
	if err := reg.Bind(low, seq, action.Command("low")); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if err := reg.Unset(high, seq); err != nil {
		t.Fatalf("Unset() error = %v", err)
	}

	base := func(s *key.Sequence) (action.Action, bool) {
		return action.Command("base"), true
	}
	r := NewResolver(reg, action.NewRegistry(), base, nil)

	act, ok := r.Resolve(seq)
	if !ok || act.Command != "base" {
		t.Errorf("Resolve() = %v, %v, want base past the tombstone", act, ok)
	}
}

func TestResolveViewIsLive(t *testing.T) {
	reg := overlay.NewRegistry(8)
	o := activeOverlay(t, reg)
	reg.Enable()

	r := NewResolver(reg, action.NewRegistry(), nil, nil)
	seq := key.MustParseSequence("x")

	if _, ok := r.Resolve(seq); ok {
		t.Fatal("Resolve() should miss before the bind")
	}
	if err := reg.Bind(o, seq, action.Command("c")); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	// The very next cycle sees the mutation.
	if act, ok := r.Resolve(seq); !ok || act.Command != "c" {
		t.Errorf("Resolve() = %v, %v, want c", act, ok)
	}
}

func TestDispatchExecutesCommand(t *testing.T) {
	reg := overlay.NewRegistry(8)
	o := activeOverlay(t, reg)
	reg.Enable()

	ran := false
	commands := action.NewRegistry()
	if err := commands.Register("ping", func() error { ran = true; return nil }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	seq := key.MustParseSequence("p")
	if err := reg.Bind(o, seq, action.Command("ping")); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	r := NewResolver(reg, commands, nil, nil)
	if err := r.Dispatch(seq); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if !ran {
		t.Error("command did not run")
	}
}

func TestDispatchPlaysMacro(t *testing.T) {
	reg := overlay.NewRegistry(8)
	o := activeOverlay(t, reg)
	reg.Enable()

	seq := key.MustParseSequence("m")
	keys := key.MustParseSequence("a b")
	if err := reg.Bind(o, seq, action.Macro("m1", keys)); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	var played string
	player := func(s *key.Sequence) error {
		played = s.Describe()
		return nil
	}
	r := NewResolver(reg, action.NewRegistry(), nil, player)
	if err := r.Dispatch(seq); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if played != "a b" {
		t.Errorf("played %q, want %q", played, "a b")
	}
}

func TestDispatchUnbound(t *testing.T) {
	reg := overlay.NewRegistry(8)
	r := NewResolver(reg, action.NewRegistry(), nil, nil)

	err := r.Dispatch(key.MustParseSequence("z"))
	if !errors.Is(err, ErrUnbound) {
		t.Errorf("Dispatch() error = %v, want ErrUnbound", err)
	}
}
