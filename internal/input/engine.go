package input

import (
	"fmt"

	"github.com/dshills/overkey/internal/input/action"
	"github.com/dshills/overkey/internal/input/key"
	"github.com/dshills/overkey/internal/input/obtain"
	"github.com/dshills/overkey/internal/input/overlay"
	"github.com/dshills/overkey/internal/input/record"
	"github.com/dshills/overkey/internal/input/source"
)

// Chain names the engine resolves for the bind variants.
const (
	ChainBindCommand = "bind-command"
	ChainBindKmacro  = "bind-kmacro"
	ChainSetKey      = "set-key"
)

// DefaultChains is the default strategy order per bind variant.
var DefaultChains = map[string][]string{
	ChainBindCommand: {"by-symbol", "by-key-sequence"},
	ChainBindKmacro:  {"by-recall-record", "by-recursive-edit", "by-read-key"},
	ChainSetKey:      {"by-key-sequence", "by-symbol", "by-recursive-edit", "by-read-key", "by-recall-record"},
}

// DefaultMacroEnd is the default capture completion sequence.
const DefaultMacroEnd = "C-e"

// Options configures an Engine. Zero-value fields fall back to
// defaults; Reader is required.
type Options struct {
	Registry *overlay.Registry
	Commands *action.Registry
	Store    *record.Store
	Reader   *source.Guard
	Logger   Logger

	// MacroEnd ends nested captures and by-read-key accumulation.
	MacroEnd *key.Sequence

	// Chains maps chain name to strategy names, replacing
	// DefaultChains wholesale when non-nil.
	Chains map[string][]string

	// BaseLookup resolves sequences no active overlay binds, typically
	// the host's base keymap.
	BaseLookup func(*key.Sequence) (action.Action, bool)
}

// Engine is the single choke point for binding mutation: it owns the
// overlay registry, the command registry, the macro store, and the
// recording session, and implements every user-facing command.
type Engine struct {
	log      Logger
	reg      *overlay.Registry
	commands *action.Registry
	store    *record.Store
	session  *record.Session
	reader   *source.Guard
	chains   map[string]*obtain.Chain
	end      *key.Sequence
	base     func(*key.Sequence) (action.Action, bool)
}

// New builds an engine from options.
func New(opts Options) (*Engine, error) {
	if opts.Reader == nil {
		return nil, fmt.Errorf("input: reader is required")
	}

	e := &Engine{
		log:      opts.Logger,
		reg:      opts.Registry,
		commands: opts.Commands,
		store:    opts.Store,
		session:  record.NewSession(),
		reader:   opts.Reader,
		end:      opts.MacroEnd,
		base:     opts.BaseLookup,
	}
	if e.log == nil {
		e.log = nopLogger{}
	}
	if e.reg == nil {
		e.reg = overlay.NewRegistry(overlay.DefaultMaxOverlays)
	}
	if e.commands == nil {
		e.commands = action.NewRegistry()
	}
	if e.store == nil {
		e.store = record.NewStore()
	}
	if e.end.IsEmpty() {
		e.end = key.MustParseSequence(DefaultMacroEnd)
	}

	names := opts.Chains
	if names == nil {
		names = DefaultChains
	}
	e.chains = make(map[string]*obtain.Chain, len(names))
	for cn, sn := range names {
		c, err := obtain.NewChainFromNames(cn, sn)
		if err != nil {
			return nil, err
		}
		e.chains[cn] = c
	}
	return e, nil
}

// Registry exposes the overlay registry to dispatch and display
// collaborators.
func (e *Engine) Registry() *overlay.Registry {
	return e.reg
}

// Commands exposes the named-command registry.
func (e *Engine) Commands() *action.Registry {
	return e.commands
}

// Store exposes the recorded-macro store.
func (e *Engine) Store() *record.Store {
	return e.store
}

// SetBaseLookup replaces the fallthrough binding lookup.
func (e *Engine) SetBaseLookup(fn func(*key.Sequence) (action.Action, bool)) {
	e.base = fn
}

// Resolve looks a sequence up through the active overlays, front
// first, falling through to the base lookup when no overlay matches or
// dispatch is switched off. A tombstone also falls through.
func (e *Engine) Resolve(seq *key.Sequence) (action.Action, bool) {
	if e.reg.Enabled() {
		if act, ok := e.reg.Lookup(seq); ok {
			return act, true
		}
	}
	if e.base != nil {
		return e.base(seq)
	}
	return action.Action{}, false
}

// ReadyOverlay returns the overlay new bindings should land in. During
// an editing session that is the front overlay, forced active;
// otherwise a fresh or recycled overlay is allocated, registered or
// re-prioritized, and activated.
func (e *Engine) ReadyOverlay() (*overlay.Overlay, error) {
	if e.reg.Editing() {
		if front := e.reg.Front(); front != nil {
			if err := e.reg.SetActiveState(front, true); err != nil {
				return nil, err
			}
			return front, nil
		}
	}

	o := e.reg.Allocate()
	if e.reg.Contains(o) {
		if err := e.reg.Prioritize(o); err != nil {
			return nil, err
		}
	} else if err := e.reg.Register(o, ""); err != nil {
		return nil, err
	}
	if err := e.reg.SetActiveState(o, true); err != nil {
		return nil, err
	}
	e.log.Debug("readied overlay %d", o.ID())
	return o, nil
}

// BindEntry writes a binding. A nil dest routes through ReadyOverlay;
// an explicit dest must be exactly what the registry holds for its
// identity. The mapping write happens first; then, unless directOnly,
// the editing session opens and dispatch switches on.
func (e *Engine) BindEntry(seq *key.Sequence, act action.Action, dest *overlay.Overlay, directOnly bool) error {
	if act.IsUnset() {
		return ErrInvalidAction
	}

	if dest == nil {
		o, err := e.ReadyOverlay()
		if err != nil {
			return err
		}
		dest = o
	}

	if err := e.reg.Bind(dest, seq, act); err != nil {
		return err
	}
	e.log.Info("bound %s to %s in overlay %d", seq.Describe(), act.String(), dest.ID())

	if !directOnly {
		e.reg.StartEditing()
		e.reg.Enable()
	}
	return nil
}

// UnsetKey writes a tombstone for the sequence into the front overlay.
// Legal only while an editing session is active.
func (e *Engine) UnsetKey(seq *key.Sequence) error {
	if !e.reg.Editing() {
		return ErrNoEditSession
	}
	front := e.reg.Front()
	if front == nil {
		return ErrNoEditSession
	}
	if err := e.reg.Unset(front, seq); err != nil {
		return err
	}
	e.log.Info("unset %s in overlay %d", seq.Describe(), front.ID())
	return nil
}

// StartEdit opens an editing session on the current front overlay.
func (e *Engine) StartEdit() {
	e.reg.StartEditing()
}

// StopEdit closes the editing session.
func (e *Engine) StopEdit() {
	e.reg.StopEditing()
}

// EnableOverlay activates the overlay with the given identity and
// moves it to the front.
func (e *Engine) EnableOverlay(id int) error {
	o, err := e.reg.Find(id)
	if err != nil {
		return err
	}
	if err := e.reg.SetActive(o, true); err != nil {
		return err
	}
	e.reg.Enable()
	return nil
}

// DisableOverlay deactivates the overlay with the given identity.
func (e *Engine) DisableOverlay(id int) error {
	o, err := e.reg.Find(id)
	if err != nil {
		return err
	}
	return e.reg.SetActive(o, false)
}

// DisableLast deactivates the front overlay.
func (e *Engine) DisableLast() error {
	front := e.reg.Front()
	if front == nil {
		return overlay.ErrUnknownOverlay
	}
	return e.reg.SetActive(front, false)
}

// DisableAll deactivates every overlay and ends the editing session.
func (e *Engine) DisableAll() {
	e.reg.DisableAll()
}

func (e *Engine) obtainContext() *obtain.Context {
	return &obtain.Context{
		Reader:         e.reader,
		Commands:       e.commands,
		Store:          e.store,
		Lookup:         e.Resolve,
		End:            e.end,
		EnableDispatch: e.reg.Enable,
	}
}

// acquire runs the named chain at the rank derived from arg and
// validates the acquired action with check.
func (e *Engine) acquire(chain string, arg *obtain.RepeatArg, check func(action.Action) bool) error {
	c, ok := e.chains[chain]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChain, chain)
	}
	strat, err := c.Select(obtain.Rank(arg))
	if err != nil {
		return err
	}
	e.log.Debug("chain %s selected strategy %s", chain, strat.Name)

	seq, act, err := strat.Acquire(e.obtainContext())
	if err != nil {
		return err
	}
	if !check(act) {
		return fmt.Errorf("%w: %s from strategy %s", ErrInvalidAction, act.String(), strat.Name)
	}
	return e.BindEntry(seq, act, nil, false)
}

// BindCommand acquires and binds a named command via the bind-command
// chain.
func (e *Engine) BindCommand(arg *obtain.RepeatArg) error {
	return e.acquire(ChainBindCommand, arg, func(a action.Action) bool {
		return a.Kind == action.KindCommand
	})
}

// BindKmacro acquires and binds a macro-like action via the
// bind-kmacro chain.
func (e *Engine) BindKmacro(arg *obtain.RepeatArg) error {
	return e.acquire(ChainBindKmacro, arg, func(a action.Action) bool {
		return a.Kind == action.KindMacro || a.Kind == action.KindRaw
	})
}

// SetKey acquires and binds any action via the set-key chain.
func (e *Engine) SetKey(arg *obtain.RepeatArg) error {
	return e.acquire(ChainSetKey, arg, func(a action.Action) bool {
		return !a.IsUnset()
	})
}

// BindLastRecorded reads a key and binds it to the most recently
// recorded macro.
func (e *Engine) BindLastRecorded() error {
	last, ok := e.store.LastRecorded()
	if !ok {
		return ErrNoLastRecorded
	}
	seq, err := e.reader.ReadSequence(fmt.Sprintf("Key for %s: ", last.Name))
	if err != nil {
		return err
	}
	return e.BindEntry(seq, action.Macro(last.Name, last.Keys), nil, false)
}

// StartRecording opens a direct recording session: capture spans
// subsequent interactions until EndRecording. Dispatch switches on so
// recorded keys run through the overlays.
func (e *Engine) StartRecording() (string, error) {
	token, err := e.session.Begin(true)
	if err != nil {
		return "", err
	}
	e.reg.Enable()
	e.log.Info("recording started, session %s", token)
	return token, nil
}

// RecordEvent feeds a dispatched keystroke to the open recording
// session.
func (e *Engine) RecordEvent(ev key.Event) {
	e.session.Record(ev)
}

// Recording reports whether a recording session is open.
func (e *Engine) Recording() bool {
	return e.session.Recording()
}

// EndRecording closes the session and stores the recording under a
// generated name.
func (e *Engine) EndRecording() (record.Macro, error) {
	keys, err := e.session.End()
	if err != nil {
		return record.Macro{}, err
	}
	m, err := e.store.SaveNext(keys)
	if err != nil {
		return record.Macro{}, err
	}
	e.log.Info("recorded %s (%d keys)", m.Name, m.Keys.Len())
	return m, nil
}

// AbortRecording discards the open recording session.
func (e *Engine) AbortRecording() {
	e.session.Abort()
	e.log.Info("recording aborted")
}

// QuitAll aborts any open recording and surfaces the global quit so
// the enclosing interaction unwinds.
func (e *Engine) QuitAll() error {
	e.session.Abort()
	return source.ErrUserAbort
}
