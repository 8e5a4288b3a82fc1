package obtain

import (
	"fmt"
	"strings"

	"github.com/dshills/overkey/internal/input/action"
	"github.com/dshills/overkey/internal/input/key"
	"github.com/dshills/overkey/internal/input/record"
	"github.com/dshills/overkey/internal/input/source"
)

// Context carries the collaborators a strategy needs to acquire a
// binding.
type Context struct {
	// Reader supplies interactive input, quit-guarded.
	Reader *source.Guard

	// Commands resolves named commands for by-symbol.
	Commands *action.Registry

	// Store holds recorded macros for by-recall-record.
	Store *record.Store

	// Lookup resolves a key sequence through the host's existing
	// bindings for by-key-sequence.
	Lookup func(*key.Sequence) (action.Action, bool)

	// End is the capture completion sequence for by-recursive-edit and
	// by-read-key.
	End *key.Sequence

	// EnableDispatch, when set, is invoked as a nested capture begins
	// so recorded keys dispatch through the overlays.
	EnableDispatch func()
}

// Strategy is one named way of acquiring a (key, action) pair.
type Strategy struct {
	// Name identifies the strategy in chain configuration.
	Name string

	// Acquire reads the key to bind and the action to bind it to.
	Acquire func(ctx *Context) (*key.Sequence, action.Action, error)
}

// Builtin returns the named builtin strategy.
func Builtin(name string) (Strategy, error) {
	switch name {
	case "by-symbol":
		return BySymbol(), nil
	case "by-key-sequence":
		return ByKeySequence(), nil
	case "by-recursive-edit":
		return ByRecursiveEdit(), nil
	case "by-read-key":
		return ByReadKey(), nil
	case "by-recall-record":
		return ByRecallRecord(), nil
	default:
		return Strategy{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// StrategyNames returns the builtin strategy names.
func StrategyNames() []string {
	return []string{
		"by-symbol",
		"by-key-sequence",
		"by-recursive-edit",
		"by-read-key",
		"by-recall-record",
	}
}

// BySymbol reads the key to bind, then a command name, and binds the
// named command.
func BySymbol() Strategy {
	return Strategy{
		Name: "by-symbol",
		Acquire: func(ctx *Context) (*key.Sequence, action.Action, error) {
			seq, err := ctx.Reader.ReadSequence("Key: ")
			if err != nil {
				return nil, action.Action{}, err
			}
			name, err := ctx.Reader.ReadName("Command: ")
			if err != nil {
				return nil, action.Action{}, err
			}
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, action.Action{}, action.ErrEmptyName
			}
			if !ctx.Commands.Has(name) {
				return nil, action.Action{}, fmt.Errorf("%w: %q", action.ErrUnknownCommand, name)
			}
			return seq, action.Command(name), nil
		},
	}
}

// ByKeySequence reads the key to bind, then a second key sequence, and
// reuses whatever action the second sequence currently resolves to.
func ByKeySequence() Strategy {
	return Strategy{
		Name: "by-key-sequence",
		Acquire: func(ctx *Context) (*key.Sequence, action.Action, error) {
			seq, err := ctx.Reader.ReadSequence("Key: ")
			if err != nil {
				return nil, action.Action{}, err
			}
			src, err := ctx.Reader.ReadSequence("Copy binding of: ")
			if err != nil {
				return nil, action.Action{}, err
			}
			act, ok := ctx.Lookup(src)
			if !ok {
				return nil, action.Action{}, fmt.Errorf("%w: %q", ErrNoBinding, src.Describe())
			}
			return seq, act, nil
		},
	}
}

// ByRecursiveEdit reads the key to bind, then suspends into a nested
// capture session; the captured keys become the bound action.
func ByRecursiveEdit() Strategy {
	return Strategy{
		Name: "by-recursive-edit",
		Acquire: func(ctx *Context) (*key.Sequence, action.Action, error) {
			seq, err := ctx.Reader.ReadSequence("Key: ")
			if err != nil {
				return nil, action.Action{}, err
			}
			if ctx.EnableDispatch != nil {
				ctx.EnableDispatch()
			}
			keys, err := record.CaptureNested(ctx.Reader, ctx.End,
				fmt.Sprintf("Recording for %s (end with %s): ", seq.Describe(), ctx.End.Describe()))
			if err != nil {
				return nil, action.Action{}, err
			}
			return seq, action.Raw(keys), nil
		},
	}
}

// ByReadKey reads the key to bind, then raw keys one at a time. Keys
// accumulate by prepending (reverse order as typed) and are reversed
// for storage, so playback order equals typed order. The configured
// completion sequence ends the capture and is stripped.
func ByReadKey() Strategy {
	return Strategy{
		Name: "by-read-key",
		Acquire: func(ctx *Context) (*key.Sequence, action.Action, error) {
			seq, err := ctx.Reader.ReadSequence("Key: ")
			if err != nil {
				return nil, action.Action{}, err
			}

			var acc []key.Event
			prompt := fmt.Sprintf("Keys (end with %s): ", ctx.End.Describe())
			for {
				ev, err := ctx.Reader.ReadEvent(prompt)
				if err != nil {
					return nil, action.Action{}, err
				}
				acc = append([]key.Event{ev}, acc...)

				typed := key.From(acc...).Reversed()
				if typed.EndsWith(ctx.End) {
					return seq, action.Raw(typed.DropLast(ctx.End.Len())), nil
				}
			}
		},
	}
}

// ByRecallRecord reads the key to bind, then offers a choice among
// previously recorded macros.
func ByRecallRecord() Strategy {
	return Strategy{
		Name: "by-recall-record",
		Acquire: func(ctx *Context) (*key.Sequence, action.Action, error) {
			seq, err := ctx.Reader.ReadSequence("Key: ")
			if err != nil {
				return nil, action.Action{}, err
			}
			names := ctx.Store.Names()
			if len(names) == 0 {
				return nil, action.Action{}, ErrNoRecordings
			}
			idx, err := ctx.Reader.ReadChoice("Macro: ", names)
			if err != nil {
				return nil, action.Action{}, err
			}
			if idx < 0 || idx >= len(names) {
				return nil, action.Action{}, fmt.Errorf("%w: choice %d", record.ErrUnknownMacro, idx)
			}
			m, err := ctx.Store.Get(names[idx])
			if err != nil {
				return nil, action.Action{}, err
			}
			return seq, action.Macro(m.Name, m.Keys), nil
		},
	}
}
