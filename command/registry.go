package command

import (
	"fmt"
	"sort"
)

// Handler runs one command. It returns true when the input was recognized
// and handled, even if it only produced a refusal or usage message, and
// false when the input was malformed for this command name.
type Handler[A any] func(args *Args[A]) bool

// Command binds a canonical command name to its handler and help text.
type Command[A any] struct {
	Name    string
	Usage   string
	Handler Handler[A]
}

// CatchAll is resolved for every unknown command name and always fails.
func CatchAll[A any](*Args[A]) bool {
	return false
}

// Registry maps command names to commands. It is immutable once built.
type Registry[A any] struct {
	commands map[string]Command[A]
	names    []string
}

// NewRegistry builds a registry, rejecting empty or duplicate names.
func NewRegistry[A any](commands ...Command[A]) (*Registry[A], error) {
	r := &Registry[A]{
		commands: make(map[string]Command[A], len(commands)),
		names:    make([]string, 0, len(commands)),
	}
	for _, cmd := range commands {
		if cmd.Name == "" {
			return nil, fmt.Errorf("command without name")
		}
		if cmd.Handler == nil {
			return nil, fmt.Errorf("command %q has no handler", cmd.Name)
		}
		if _, found := r.commands[cmd.Name]; found {
			return nil, fmt.Errorf("command %q registered twice", cmd.Name)
		}
		r.commands[cmd.Name] = cmd
		r.names = append(r.names, cmd.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Resolve returns the handler registered under the exact, case sensitive
// name, or CatchAll and false.
func (r *Registry[A]) Resolve(name string) (Handler[A], bool) {
	if cmd, found := r.commands[name]; found {
		return cmd.Handler, true
	}
	return CatchAll[A], false
}

func (r *Registry[A]) Lookup(name string) (Command[A], bool) {
	cmd, found := r.commands[name]
	return cmd, found
}

// Names returns all command names sorted lexicographically.
func (r *Registry[A]) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}
