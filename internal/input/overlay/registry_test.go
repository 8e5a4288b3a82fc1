package overlay

import (
	"errors"
	"testing"

	"github.com/dshills/overkey/internal/input/action"
	"github.com/dshills/overkey/internal/input/key"
)

// register allocates, registers, and optionally activates an overlay.
func register(t *testing.T, r *Registry, tag string, active bool) *Overlay {
	t.Helper()
	o := r.Allocate()
	if !r.Contains(o) {
		if err := r.Register(o, tag); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}
	if active {
		if err := r.SetActiveState(o, true); err != nil {
			t.Fatalf("SetActiveState() error = %v", err)
		}
	}
	return o
}

func TestAllocateAssignsLowestFreeIdentity(t *testing.T) {
	r := NewRegistry(4)

	for want := 1; want <= 4; want++ {
		o := r.Allocate()
		if o.ID() != want {
			t.Fatalf("Allocate() id = %d, want %d", o.ID(), want)
		}
		if err := r.Register(o, ""); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}
}

func TestAllocateRecyclesLeastRecentlyPrioritizedInactive(t *testing.T) {
	r := NewRegistry(2)

	o1 := register(t, r, "one", true)
	o2 := register(t, r, "two", false)
	if err := r.Bind(o2, key.MustParseSequence("x"), action.Command("c")); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	// Order is [o2, o1]; o2 inactive, o1 active. Put o1 in front so o2
	// is the least-recently-prioritized.
	if err := r.Prioritize(o1); err != nil {
		t.Fatalf("Prioritize() error = %v", err)
	}

	got := r.Allocate()
	if got != o2 {
		t.Fatalf("Allocate() = overlay %d, want recycled overlay %d", got.ID(), o2.ID())
	}
	if got.Len() != 0 {
		t.Errorf("recycled overlay keeps %d entries, want 0", got.Len())
	}
	if got.Tag() != "" {
		t.Errorf("recycled overlay keeps tag %q", got.Tag())
	}
}

func TestAllocateNeverRecyclesActive(t *testing.T) {
	r := NewRegistry(3)

	register(t, r, "", true)
	o2 := register(t, r, "", false)
	register(t, r, "", true)

	if got := r.Allocate(); got != o2 {
		t.Errorf("Allocate() = overlay %d, want inactive overlay %d", got.ID(), o2.ID())
	}
}

func TestAllocateFullRegistryFallsBackToIdentityOne(t *testing.T) {
	r := NewRegistry(2)

	o1 := register(t, r, "", true)
	o2 := register(t, r, "", true)
	if err := r.Bind(o1, key.MustParseSequence("x"), action.Command("c")); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	got := r.Allocate()
	if got.ID() != 1 {
		t.Fatalf("Allocate() id = %d, want fallback identity 1", got.ID())
	}
	if got != o1 {
		t.Error("fallback should reuse the live overlay, not invent a new one")
	}
	if got.Len() != 0 {
		t.Errorf("fallback keeps %d entries, want discarded mapping", got.Len())
	}
	// The evicted overlay is still active; the fallback does not
	// disable it.
	if !got.Active() {
		t.Error("fallback should not clear the active flag")
	}
	_ = o2
}

func TestRegisterInsertsAtFrontInactive(t *testing.T) {
	r := NewRegistry(8)

	register(t, r, "first", false)
	o2 := register(t, r, "second", false)

	if front := r.Front(); front != o2 {
		t.Errorf("Front() = overlay %d, want most recently registered %d", front.ID(), o2.ID())
	}
	if o2.Active() {
		t.Error("registered overlay should start inactive")
	}

	if err := r.Register(o2, "again"); err == nil {
		t.Error("re-registering a held overlay should fail")
	}
}

func TestRegisterRejectsDuplicateIdentity(t *testing.T) {
	r := NewRegistry(8)

	// Two allocations without an intervening Register both mint the
	// lowest free identity.
	a := r.Allocate()
	b := r.Allocate()
	if a.ID() != b.ID() {
		t.Fatalf("Allocate() identities = %d, %d, want equal", a.ID(), b.ID())
	}

	if err := r.Register(a, "first"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(b, "second"); err == nil {
		t.Error("registering a second overlay with a held identity should fail")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestPrioritizeMovesToFrontAndStopsEditing(t *testing.T) {
	r := NewRegistry(8)

	o1 := register(t, r, "", true)
	o2 := register(t, r, "", true)
	// Order: [o2, o1].
	r.StartEditing()

	if err := r.Prioritize(o1); err != nil {
		t.Fatalf("Prioritize() error = %v", err)
	}
	if front := r.Front(); front != o1 {
		t.Errorf("Front() = overlay %d, want %d", front.ID(), o1.ID())
	}
	if r.Editing() {
		t.Error("reprioritization should end the editing session")
	}
	_ = o2
}

func TestPrioritizeIdempotent(t *testing.T) {
	r := NewRegistry(8)

	o1 := register(t, r, "", true)
	register(t, r, "", true)
	if err := r.Prioritize(o1); err != nil {
		t.Fatalf("Prioritize() error = %v", err)
	}

	r.StartEditing()
	before := r.IDs()

	// Second call with no intervening change: order and editing
	// session must be untouched.
	if err := r.Prioritize(o1); err != nil {
		t.Fatalf("Prioritize() error = %v", err)
	}
	after := r.IDs()
	if len(before) != len(after) {
		t.Fatalf("order length changed: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("order changed: %v -> %v", before, after)
			break
		}
	}
	if !r.Editing() {
		t.Error("idempotent prioritize ended the editing session")
	}
}

func TestPrioritizeUnregistered(t *testing.T) {
	r := NewRegistry(8)
	o := r.Allocate()
	if err := r.Prioritize(o); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("error = %v, want ErrNotRegistered", err)
	}
}

func TestSetActiveEnableReprioritizes(t *testing.T) {
	r := NewRegistry(8)

	o1 := register(t, r, "", false)
	register(t, r, "", false)
	// Order: [o2, o1].

	if err := r.SetActive(o1, true); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if !o1.Active() {
		t.Error("overlay should be active")
	}
	if front := r.Front(); front != o1 {
		t.Errorf("enable should move overlay %d to front, front = %d", o1.ID(), front.ID())
	}
}

func TestSetActiveDisableFrontStopsEditing(t *testing.T) {
	r := NewRegistry(8)

	register(t, r, "", true)
	o2 := register(t, r, "", true)
	if err := r.Prioritize(o2); err != nil {
		t.Fatalf("Prioritize() error = %v", err)
	}
	r.StartEditing()
	r.Enable()

	if err := r.SetActive(o2, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if r.Editing() {
		t.Error("disabling the front overlay should end the editing session")
	}
	// Another overlay is still active, so dispatch stays on.
	if !r.Enabled() {
		t.Error("dispatch switch should survive while other overlays are active")
	}
}

func TestSetActiveDisableLastTurnsDispatchOff(t *testing.T) {
	r := NewRegistry(8)

	o1 := register(t, r, "", true)
	r.Enable()

	if err := r.SetActive(o1, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if r.Enabled() {
		t.Error("disabling the last active overlay should turn dispatch off")
	}
}

func TestSetActiveStateOnly(t *testing.T) {
	r := NewRegistry(8)

	o1 := register(t, r, "", false)
	register(t, r, "", false)
	// Order: [o2, o1].

	if err := r.SetActiveState(o1, true); err != nil {
		t.Fatalf("SetActiveState() error = %v", err)
	}
	if front := r.Front(); front == o1 {
		t.Error("state-only enable must not reorder")
	}
	if !o1.Active() {
		t.Error("state-only enable should still set the flag")
	}
}

func TestDisableAll(t *testing.T) {
	r := NewRegistry(8)

	register(t, r, "", true)
	register(t, r, "", true)
	r.StartEditing()
	r.Enable()

	r.DisableAll()

	for _, o := range r.View() {
		if o.Active() {
			t.Errorf("overlay %d still active after DisableAll", o.ID())
		}
	}
	if r.Editing() {
		t.Error("editing session should end")
	}
	// DisableAll leaves the global switch alone.
	if !r.Enabled() {
		t.Error("global dispatch switch should be untouched")
	}
}

func TestBindRoundTrip(t *testing.T) {
	r := NewRegistry(8)
	o := register(t, r, "", true)

	seq := key.MustParseSequence("C-c k")
	act := action.Command("editor.save")
	if err := r.Bind(o, seq, act); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	got, ok := o.Get(seq)
	if !ok {
		t.Fatal("Get() found nothing after Bind")
	}
	if got.Kind != action.KindCommand || got.Command != "editor.save" {
		t.Errorf("Get() = %v, want %v", got, act)
	}
}

func TestBindRejectsForeignDestination(t *testing.T) {
	r := NewRegistry(1)
	register(t, r, "", false)

	// An overlay from another registry shares identity 1 but is not the
	// overlay this registry holds.
	other := NewRegistry(1)
	foreign := register(t, other, "", false)

	err := r.Bind(foreign, key.MustParseSequence("x"), action.Command("c"))
	if !errors.Is(err, ErrInvalidDestination) {
		t.Errorf("error = %v, want ErrInvalidDestination", err)
	}
}

func TestBindRejectsEmptySequence(t *testing.T) {
	r := NewRegistry(8)
	o := register(t, r, "", true)

	err := r.Bind(o, key.NewSequence(), action.Command("c"))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestLookupHonorsPriorityAndActiveFlags(t *testing.T) {
	r := NewRegistry(8)

	low := register(t, r, "", true)
	high := register(t, r, "", true)
	if err := r.Prioritize(high); err != nil {
		t.Fatalf("Prioritize() error = %v", err)
	}

	seq := key.MustParseSequence("x")
	if err := r.Bind(low, seq, action.Command("low")); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if err := r.Bind(high, seq, action.Command("high")); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	got, ok := r.Lookup(seq)
	if !ok || got.Command != "high" {
		t.Errorf("Lookup() = %v, %v, want high-priority binding", got, ok)
	}

	// Disabling the front overlay exposes the lower one.
	if err := r.SetActiveState(high, false); err != nil {
		t.Fatalf("SetActiveState() error = %v", err)
	}
	got, ok = r.Lookup(seq)
	if !ok || got.Command != "low" {
		t.Errorf("Lookup() after disable = %v, %v, want low-priority binding", got, ok)
	}
}

func TestUnsetTombstoneShadows(t *testing.T) {
	r := NewRegistry(8)

	low := register(t, r, "", true)
	high := register(t, r, "", true)
	if err := r.Prioritize(high); err != nil {
		t.Fatalf("Prioritize() error = %v", err)
	}

	seq := key.MustParseSequence("x")
	if err := r.Bind(low, seq, action.Command("low")); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if err := r.Unset(high, seq); err != nil {
		t.Fatalf("Unset() error = %v", err)
	}

	if _, ok := r.Lookup(seq); ok {
		t.Error("tombstone in front overlay should shadow lower bindings")
	}
}

func TestViewIsLive(t *testing.T) {
	r := NewRegistry(8)
	o := register(t, r, "", false)

	view := r.View()
	if len(view) != 1 || view[0] != o {
		t.Fatalf("View() = %v", view)
	}

	// Mutation through the registry is visible through the view.
	if err := r.SetActiveState(o, true); err != nil {
		t.Fatalf("SetActiveState() error = %v", err)
	}
	if !view[0].Active() {
		t.Error("view should observe the overlay's live state")
	}
}

func TestChangeHooks(t *testing.T) {
	r := NewRegistry(8)

	var ops []string
	r.OnChange(func(c Change) { ops = append(ops, c.Op) })

	o := r.Allocate()
	if err := r.Register(o, ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.SetActiveState(o, true); err != nil {
		t.Fatalf("SetActiveState() error = %v", err)
	}

	want := []string{"register", "activate"}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("ops[%d] = %q, want %q", i, ops[i], want[i])
		}
	}
}

func TestDefaultBound(t *testing.T) {
	r := NewRegistry(0)
	if r.MaxOverlays() != DefaultMaxOverlays {
		t.Errorf("MaxOverlays() = %d, want %d", r.MaxOverlays(), DefaultMaxOverlays)
	}
}
