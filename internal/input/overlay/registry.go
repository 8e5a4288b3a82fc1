package overlay

import (
	"fmt"
	"sync"

	"github.com/dshills/overkey/internal/input/action"
	"github.com/dshills/overkey/internal/input/key"
)

// DefaultMaxOverlays is the default bound on the overlay pool.
const DefaultMaxOverlays = 8

// Change describes a registry mutation, delivered synchronously to
// change hooks so a host UI can refresh its indicator.
type Change struct {
	// Op names the mutation: "register", "prioritize", "activate",
	// "deactivate", "disable-all", "bind", "unset", "enable", "disable".
	Op string

	// ID is the affected overlay identity, or 0 for registry-wide ops.
	ID int
}

// Registry is the ordered, bounded pool of overlays. Sequence order
// encodes dispatch priority, front first. The registry also owns the
// editing-session flag and the global dispatch switch, because both
// change as side effects of registry operations.
type Registry struct {
	mu      sync.Mutex
	max     int
	order   []*Overlay
	editing bool
	enabled bool
	hooks   []func(Change)
}

// NewRegistry creates a registry bounded to max overlays. A
// non-positive max falls back to DefaultMaxOverlays.
func NewRegistry(max int) *Registry {
	if max <= 0 {
		max = DefaultMaxOverlays
	}
	return &Registry{max: max}
}

// MaxOverlays returns the configured bound.
func (r *Registry) MaxOverlays() int {
	return r.max
}

// OnChange registers a hook called synchronously after each mutation.
// Hooks must not call back into the registry.
func (r *Registry) OnChange(hook func(Change)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

func (r *Registry) notify(op string, id int) {
	for _, hook := range r.hooks {
		hook(Change{Op: op, ID: id})
	}
}

// Allocate finds the overlay to bind into next.
//
// Preference order: the lowest unused identity up to the bound; then
// the least-recently-prioritized inactive overlay (scanning from the
// back of the priority sequence, skipping active ones), whose mapping
// is discarded; then, when every slot is occupied by an active
// overlay, identity 1 is reused unconditionally. That last case evicts
// a live overlay's bindings without disabling it first and is kept for
// compatibility with the behavior this engine emulates.
//
// A brand-new overlay is returned unregistered; recycled overlays keep
// their position until re-prioritized.
func (r *Registry) Allocate() *Overlay {
	r.mu.Lock()
	defer r.mu.Unlock()

	used := make(map[int]bool, len(r.order))
	for _, o := range r.order {
		used[o.id] = true
	}
	for id := 1; id <= r.max; id++ {
		if !used[id] {
			return newOverlay(id)
		}
	}

	// All identities occupied: recycle the least-recently-prioritized
	// inactive overlay.
	for i := len(r.order) - 1; i >= 0; i-- {
		o := r.order[i]
		if !o.active {
			o.clear()
			return o
		}
	}

	// Every overlay is active. Fall back to identity 1.
	o := r.findLocked(1)
	o.clear()
	return o
}

// Register associates a newly allocated overlay with the registry,
// inserting it at the front of the priority sequence with the active
// flag off.
func (r *Registry) Register(o *Overlay, tag string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findLocked(o.id) != nil {
		return fmt.Errorf("overlay: identity %d already registered", o.id)
	}
	o.tag = tag
	o.active = false
	r.order = append([]*Overlay{o}, r.order...)
	r.notify("register", o.id)
	return nil
}

// Contains reports whether the registry currently holds this exact
// overlay.
func (r *Registry) Contains(o *Overlay) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.containsLocked(o)
}

func (r *Registry) containsLocked(o *Overlay) bool {
	for _, held := range r.order {
		if held == o {
			return true
		}
	}
	return false
}

// Prioritize moves the overlay to the front of the dispatch order.
// When the order actually changes, any active editing session ends:
// the previous front overlay is no longer implicitly current. Calling
// it on the overlay already at the front changes nothing, so the
// operation is idempotent.
func (r *Registry) Prioritize(o *Overlay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prioritizeLocked(o)
}

func (r *Registry) prioritizeLocked(o *Overlay) error {
	idx := -1
	for i, held := range r.order {
		if held == o {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: %d", ErrNotRegistered, o.id)
	}
	if idx == 0 {
		return nil
	}

	copy(r.order[1:idx+1], r.order[:idx])
	r.order[0] = o
	r.editing = false
	r.notify("prioritize", o.id)
	return nil
}

// SetActive sets the overlay's active flag with full housekeeping:
// enabling re-prioritizes the overlay; disabling the front overlay
// stops the editing session, and disabling the last active overlay
// also turns off the global dispatch switch.
func (r *Registry) SetActive(o *Overlay, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.containsLocked(o) {
		return fmt.Errorf("%w: %d", ErrNotRegistered, o.id)
	}

	if active {
		o.active = true
		r.notify("activate", o.id)
		return r.prioritizeLocked(o)
	}

	wasFront := len(r.order) > 0 && r.order[0] == o
	o.active = false
	r.notify("deactivate", o.id)
	if wasFront {
		r.editing = false
	}
	if r.activeCountLocked() == 0 {
		r.enabled = false
		r.notify("disable", 0)
	}
	return nil
}

// SetActiveState sets only the active flag, with no reordering or
// session side effects.
func (r *Registry) SetActiveState(o *Overlay, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.containsLocked(o) {
		return fmt.Errorf("%w: %d", ErrNotRegistered, o.id)
	}
	o.active = active
	if active {
		r.notify("activate", o.id)
	} else {
		r.notify("deactivate", o.id)
	}
	return nil
}

// DisableAll clears every overlay's active flag and stops the editing
// session. The global dispatch switch is left untouched.
func (r *Registry) DisableAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.order {
		o.active = false
	}
	r.editing = false
	r.notify("disable-all", 0)
}

func (r *Registry) activeCountLocked() int {
	n := 0
	for _, o := range r.order {
		if o.active {
			n++
		}
	}
	return n
}

// ActiveCount returns the number of active overlays.
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeCountLocked()
}

// Front returns the highest-priority overlay, or nil when the registry
// is empty.
func (r *Registry) Front() *Overlay {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.order) == 0 {
		return nil
	}
	return r.order[0]
}

// Find returns the overlay with the given identity, or an error.
func (r *Registry) Find(id int) (*Overlay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o := r.findLocked(id); o != nil {
		return o, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownOverlay, id)
}

func (r *Registry) findLocked(id int) *Overlay {
	for _, o := range r.order {
		if o.id == id {
			return o
		}
	}
	return nil
}

// Len returns the number of registered overlays.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// IDs returns the overlay identities in current priority order.
func (r *Registry) IDs() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int, len(r.order))
	for i, o := range r.order {
		ids[i] = o.id
	}
	return ids
}

// View returns the current priority order. The slice is a snapshot but
// the overlays are live references: mutations are visible to the very
// next dispatch cycle. The dispatch collaborator must consult only
// active overlays, in order, stopping at the first match.
func (r *Registry) View() []*Overlay {
	r.mu.Lock()
	defer r.mu.Unlock()
	view := make([]*Overlay, len(r.order))
	copy(view, r.order)
	return view
}

// Bind writes a key-to-action binding into the destination overlay.
// The destination must be exactly the overlay the registry holds for
// its identity; a stale or foreign overlay is rejected before any
// write.
func (r *Registry) Bind(o *Overlay, seq *key.Sequence, act action.Action) error {
	if seq.IsEmpty() {
		return ErrInvalidArgument
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if held := r.findLocked(o.id); held != o {
		return fmt.Errorf("%w: overlay %d", ErrInvalidDestination, o.id)
	}
	o.bind(seq, act)
	r.notify("bind", o.id)
	return nil
}

// Unset writes a tombstone for the key sequence into the overlay,
// shadowing the binding in every overlay below it.
func (r *Registry) Unset(o *Overlay, seq *key.Sequence) error {
	if seq.IsEmpty() {
		return ErrInvalidArgument
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if held := r.findLocked(o.id); held != o {
		return fmt.Errorf("%w: overlay %d", ErrInvalidDestination, o.id)
	}
	o.bind(seq, action.Unset())
	r.notify("unset", o.id)
	return nil
}

// Lookup walks active overlays front to back and returns the first
// binding for the sequence. A tombstone stops the walk and reports no
// match, letting dispatch fall through to the host's base bindings.
func (r *Registry) Lookup(seq *key.Sequence) (action.Action, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	desc := seq.Describe()
	for _, o := range r.order {
		if !o.active {
			continue
		}
		if e, ok := o.entries[desc]; ok {
			if e.Act.IsUnset() {
				return action.Action{}, false
			}
			return e.Act, true
		}
	}
	return action.Action{}, false
}

// Editing reports whether an editing session is active: new bindings
// merge into the front overlay instead of allocating a fresh one.
func (r *Registry) Editing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.editing
}

// StartEditing begins an editing session.
func (r *Registry) StartEditing() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.editing = true
}

// StopEditing ends the editing session.
func (r *Registry) StopEditing() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.editing = false
}

// Enabled reports the global dispatch switch.
func (r *Registry) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Enable turns the global dispatch switch on.
func (r *Registry) Enable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		r.enabled = true
		r.notify("enable", 0)
	}
}

// Disable turns the global dispatch switch off. Overlay flags and the
// priority order are untouched.
func (r *Registry) Disable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enabled {
		r.enabled = false
		r.notify("disable", 0)
	}
}
