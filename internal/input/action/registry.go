package action

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry errors.
var (
	// ErrUnknownCommand indicates a lookup for a name that was never
	// registered.
	ErrUnknownCommand = errors.New("action: unknown command")

	// ErrEmptyName indicates an attempt to register a nameless command.
	ErrEmptyName = errors.New("action: empty command name")
)

// Func is an executable command body. Commands capture their
// collaborators as closures; invocation takes no arguments.
type Func func() error

// Registry maps command names to executable bodies. It backs the
// by-symbol acquisition strategy, bind-command validation, and
// dispatch of KindCommand actions.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Func
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Func)}
}

// Register adds a command. An existing command with the same name is
// replaced.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return fmt.Errorf("action: nil body for command %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[name] = fn
	return nil
}

// Unregister removes a command. Removing an unknown name is a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.commands, name)
}

// Has returns true if a command with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commands[name]
	return ok
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Invoke executes the named command.
func (r *Registry) Invoke(name string) error {
	r.mu.RLock()
	fn, ok := r.commands[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return fn()
}
