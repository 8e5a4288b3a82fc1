package action

import (
	"fmt"

	"github.com/dshills/overkey/internal/input/key"
)

// Kind discriminates the action union.
type Kind int

const (
	// KindUnset is a tombstone: the key is explicitly unbound and
	// shadows any lower-priority overlay binding.
	KindUnset Kind = iota

	// KindCommand invokes a named command from the command registry.
	KindCommand

	// KindMacro replays a recorded macro.
	KindMacro

	// KindRaw replays a raw key sequence entered one key at a time.
	KindRaw
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindCommand:
		return "command"
	case KindMacro:
		return "macro"
	case KindRaw:
		return "raw"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Action is the value an overlay binds a key sequence to. Exactly one
// variant is populated, selected by Kind.
type Action struct {
	// Kind selects the variant.
	Kind Kind

	// Command is the registry name for KindCommand actions.
	Command string

	// Name labels KindMacro actions with their store slot.
	Name string

	// Keys holds the replay sequence for KindMacro and KindRaw actions.
	Keys *key.Sequence
}

// Command creates a named-command action.
func Command(name string) Action {
	return Action{Kind: KindCommand, Command: name}
}

// Macro creates a recorded-macro action.
func Macro(name string, keys *key.Sequence) Action {
	return Action{Kind: KindMacro, Name: name, Keys: keys.Clone()}
}

// Raw creates a raw key entry action.
func Raw(keys *key.Sequence) Action {
	return Action{Kind: KindRaw, Keys: keys.Clone()}
}

// Unset creates a tombstone action.
func Unset() Action {
	return Action{Kind: KindUnset}
}

// IsUnset returns true for tombstone actions.
func (a Action) IsUnset() bool {
	return a.Kind == KindUnset
}

// String returns a display form of the action.
func (a Action) String() string {
	switch a.Kind {
	case KindCommand:
		return a.Command
	case KindMacro:
		if a.Name != "" {
			return "macro:" + a.Name
		}
		return "macro:" + a.Keys.Describe()
	case KindRaw:
		return "keys:" + a.Keys.Describe()
	default:
		return "unset"
	}
}
