package overlay

import (
	"sort"

	"github.com/dshills/overkey/internal/input/action"
	"github.com/dshills/overkey/internal/input/key"
)

// Entry is a single key-to-action binding inside an overlay.
type Entry struct {
	// Seq is the bound key sequence.
	Seq *key.Sequence

	// Act is the bound action. An unset (tombstone) action shadows the
	// key without removing the entry.
	Act action.Action
}

// Overlay is one transient binding table: a mutable key-to-action
// mapping plus an active flag and a display tag. Overlays are owned
// exclusively by a Registry; all mutation goes through Registry
// operations, never through direct writes.
type Overlay struct {
	id      int
	tag     string
	active  bool
	entries map[string]Entry
}

func newOverlay(id int) *Overlay {
	return &Overlay{
		id:      id,
		entries: make(map[string]Entry),
	}
}

// ID returns the overlay's stable identity (1..N).
func (o *Overlay) ID() int {
	return o.id
}

// Tag returns the display tag, which may be empty.
func (o *Overlay) Tag() string {
	return o.tag
}

// Active returns the overlay's active flag. Only active overlays are
// consulted during dispatch.
func (o *Overlay) Active() bool {
	return o.active
}

// Len returns the number of entries, tombstones included.
func (o *Overlay) Len() int {
	return len(o.entries)
}

// Get returns the binding for a key sequence, if present. Tombstone
// entries are returned as (unset action, true); callers decide the
// shadowing policy.
func (o *Overlay) Get(seq *key.Sequence) (action.Action, bool) {
	e, ok := o.entries[seq.Describe()]
	if !ok {
		return action.Action{}, false
	}
	return e.Act, true
}

// Entries returns a snapshot of the overlay's bindings, sorted by
// sequence description for stable display.
func (o *Overlay) Entries() []Entry {
	out := make([]Entry, 0, len(o.entries))
	keys := make([]string, 0, len(o.entries))
	for k := range o.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, o.entries[k])
	}
	return out
}

// bind writes a binding. Caller (the registry) holds the lock.
func (o *Overlay) bind(seq *key.Sequence, act action.Action) {
	o.entries[seq.Describe()] = Entry{Seq: seq.Clone(), Act: act}
}

// clear discards the mapping and tag, preparing the identity for reuse.
func (o *Overlay) clear() {
	o.entries = make(map[string]Entry)
	o.tag = ""
}
