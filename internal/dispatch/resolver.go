package dispatch

import (
	"errors"
	"fmt"

	"github.com/dshills/overkey/internal/input/action"
	"github.com/dshills/overkey/internal/input/key"
	"github.com/dshills/overkey/internal/input/overlay"
)

// ErrUnbound indicates a key sequence no overlay or base binding
// resolves.
var ErrUnbound = errors.New("dispatch: key sequence is not bound")

// Lookup resolves a key sequence outside the overlays, typically the
// host's base keymap.
type Lookup func(*key.Sequence) (action.Action, bool)

// Player replays a recorded key sequence.
type Player func(*key.Sequence) error

// Resolver routes key sequences through the overlay registry's live
// view: only active overlays are consulted, front first, first match
// wins, gated by the registry's global dispatch switch. Unmatched
// input falls through to the base lookup.
type Resolver struct {
	reg      *overlay.Registry
	commands *action.Registry
	base     Lookup
	player   Player
}

// NewResolver builds a resolver over the registry and command set.
// Base and player are optional.
func NewResolver(reg *overlay.Registry, commands *action.Registry, base Lookup, player Player) *Resolver {
	return &Resolver{reg: reg, commands: commands, base: base, player: player}
}

// Resolve returns the action bound to the sequence. The registry view
// is live: a mutation is visible to the very next call.
func (r *Resolver) Resolve(seq *key.Sequence) (action.Action, bool) {
	if r.reg.Enabled() {
		for _, o := range r.reg.View() {
			if !o.Active() {
				continue
			}
			act, ok := o.Get(seq)
			if !ok {
				continue
			}
			if act.IsUnset() {
				// Tombstone: stop the overlay walk, fall to base.
				break
			}
			return act, true
		}
	}
	if r.base != nil {
		return r.base(seq)
	}
	return action.Action{}, false
}

// Dispatch resolves and executes the sequence's binding.
func (r *Resolver) Dispatch(seq *key.Sequence) error {
	act, ok := r.Resolve(seq)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnbound, seq.Describe())
	}
	return r.Execute(act)
}

// Execute runs a resolved action: commands invoke by name, macro and
// raw actions replay through the player.
func (r *Resolver) Execute(act action.Action) error {
	switch act.Kind {
	case action.KindCommand:
		return r.commands.Invoke(act.Command)
	case action.KindMacro, action.KindRaw:
		if r.player == nil {
			return fmt.Errorf("dispatch: no player for %s", act.String())
		}
		return r.player(act.Keys)
	default:
		return fmt.Errorf("%w: %s", ErrUnbound, act.String())
	}
}
