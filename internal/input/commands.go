package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/overkey/internal/input/action"
)

// RegisterCommands registers every user-facing command in the named
// command registry. Commands close over the engine, so dispatch can
// invoke them by name alone.
func (e *Engine) RegisterCommands() error {
	cmds := map[string]action.Func{
		"enable-overlay":     e.cmdEnableOverlay,
		"disable-overlay":    e.cmdDisableOverlay,
		"disable-last":       e.DisableLast,
		"disable-all":        func() error { e.DisableAll(); return nil },
		"start-edit":         func() error { e.StartEdit(); return nil },
		"stop-edit":          func() error { e.StopEdit(); return nil },
		"bind-entry":         e.cmdBindEntry,
		"bind-command":       func() error { return e.BindCommand(nil) },
		"bind-kmacro":        func() error { return e.BindKmacro(nil) },
		"bind-last-recorded": e.BindLastRecorded,
		"set-key":            func() error { return e.SetKey(nil) },
		"unset-key":          e.cmdUnsetKey,
		"start-recording":    func() error { _, err := e.StartRecording(); return err },
		"end-recording":      func() error { _, err := e.EndRecording(); return err },
		"abort-recording":    func() error { e.AbortRecording(); return nil },
		"quit-all":           e.QuitAll,
	}
	for name, fn := range cmds {
		if err := e.commands.Register(name, fn); err != nil {
			return fmt.Errorf("input: register %q: %w", name, err)
		}
	}
	return nil
}

func (e *Engine) readOverlayID() (int, error) {
	name, err := e.reader.ReadName("Overlay: ")
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(name))
	if err != nil {
		return 0, fmt.Errorf("input: overlay identity %q: %w", name, err)
	}
	return id, nil
}

func (e *Engine) cmdEnableOverlay() error {
	id, err := e.readOverlayID()
	if err != nil {
		return err
	}
	return e.EnableOverlay(id)
}

func (e *Engine) cmdDisableOverlay() error {
	id, err := e.readOverlayID()
	if err != nil {
		return err
	}
	return e.DisableOverlay(id)
}

// cmdBindEntry is the primitive interactive bind: a key and a command
// name, no strategy chain.
func (e *Engine) cmdBindEntry() error {
	seq, err := e.reader.ReadSequence("Key: ")
	if err != nil {
		return err
	}
	name, err := e.reader.ReadName("Command: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if !e.commands.Has(name) {
		return fmt.Errorf("%w: %q", action.ErrUnknownCommand, name)
	}
	return e.BindEntry(seq, action.Command(name), nil, false)
}

func (e *Engine) cmdUnsetKey() error {
	seq, err := e.reader.ReadSequence("Unset key: ")
	if err != nil {
		return err
	}
	return e.UnsetKey(seq)
}
