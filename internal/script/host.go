package script

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/overkey/internal/input/action"
)

// ErrHostClosed indicates a call into a closed script host.
var ErrHostClosed = errors.New("script: host is closed")

// Host runs user scripts in a sandboxed Lua state and exposes a
// `register(name, fn)` global that adds named commands to the action
// registry. Registered functions run inside the sandbox whenever the
// command is invoked.
type Host struct {
	mu       sync.Mutex
	state    *lua.LState
	commands *action.Registry
	closed   bool
}

// NewHost creates a host registering commands into the given registry.
func NewHost(commands *action.Registry) *Host {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// Only safe libraries: no io, os, debug, or package.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	h := &Host{state: L, commands: commands}
	L.SetGlobal("register", L.NewFunction(h.luaRegister))
	return h
}

func (h *Host) luaRegister(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	if err := h.commands.Register(name, func() error {
		return h.call(fn)
	}); err != nil {
		L.RaiseError("register %q: %s", name, err.Error())
	}
	return 0
}

func (h *Host) call(fn *lua.LFunction) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	if err := h.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}); err != nil {
		return fmt.Errorf("script: command: %w", err)
	}
	return nil
}

// DoString runs a script from a string.
func (h *Host) DoString(src string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	if err := h.state.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// DoFile runs a script file.
func (h *Host) DoFile(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	if err := h.state.DoFile(path); err != nil {
		return fmt.Errorf("script: %s: %w", path, err)
	}
	return nil
}

// Close shuts the Lua state down. Commands registered by scripts
// report ErrHostClosed afterwards.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	h.state.Close()
}
