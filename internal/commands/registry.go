// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/termfolio/internal/profile"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Action produces the output of a command invocation. Args are the tokens
// after the command name, in their original case.
type Action func(ctx *Context, args []string) Output

// Command is a named entry in the registry. Commands are immutable once
// registered.
type Command struct {
	// Name is the unique lowercase key (e.g., "skills")
	Name string

	// Description is shown in help and completion hints
	Description string

	// Usage shows argument syntax (e.g., "projects [--details]")
	Usage string

	// Category groups commands in help output
	Category string

	// Hidden commands are callable but not listed in help
	Hidden bool

	// Action produces the command output
	Action Action
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

var (
	// ErrEmptyName is returned when a command has no name.
	ErrEmptyName = errors.New("command name is empty")

	// ErrDuplicateName is returned when two commands share a name.
	ErrDuplicateName = errors.New("duplicate command name")

	// ErrNoAction is returned when a command has no Action.
	ErrNoAction = errors.New("command has no action")
)

// Registry is an ordered, read-only command table. Keys are lowercase and
// enumeration follows registration order.
type Registry struct {
	commands map[string]*Command
	order    []string
}

// NewRegistry builds a registry from cmds in the given order. Names are
// normalized; empty or duplicate names are rejected.
func NewRegistry(cmds ...*Command) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]*Command, len(cmds)),
		order:    make([]string, 0, len(cmds)),
	}
	for i, cmd := range cmds {
		if cmd == nil {
			return nil, fmt.Errorf("command %d: nil", i)
		}
		name := Normalize(cmd.Name)
		if name == "" {
			return nil, fmt.Errorf("command %d: %w", i, ErrEmptyName)
		}
		if strings.ContainsFunc(name, isSpace) {
			return nil, fmt.Errorf("command %q: name contains whitespace", cmd.Name)
		}
		if cmd.Action == nil {
			return nil, fmt.Errorf("command %q: %w", name, ErrNoAction)
		}
		if _, exists := r.commands[name]; exists {
			return nil, fmt.Errorf("command %q: %w", name, ErrDuplicateName)
		}
		c := *cmd
		c.Name = name
		r.commands[name] = &c
		r.order = append(r.order, name)
	}
	return r, nil
}

// Lookup finds a command by name. The name is trimmed and lowercased first.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[Normalize(name)]
	return cmd, ok
}

// Names returns every registered name in registration order. The returned
// slice is a copy.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns all registered commands in registration order.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		cmds = append(cmds, r.commands[name])
	}
	return cmds
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.order)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Normalize trims and lowercases a command name, folding it to Unicode NFC
// so that composed and decomposed forms compare equal.
func Normalize(name string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(name)))
}

// =============================================================================
// CONTEXT TYPE
// =============================================================================

// Context gives command actions access to the content they print and to the
// registry itself (for help).
type Context struct {
	// Profile is the portfolio content
	Profile *profile.Profile

	// Registry is the table the command was found in
	Registry *Registry

	// Now returns the current time; tests pin it
	Now func() time.Time
}

// NewContext creates a command context. A nil profile uses the embedded
// default.
func NewContext(p *profile.Profile, reg *Registry) *Context {
	if p == nil {
		p = profile.Default()
	}
	return &Context{
		Profile:  p,
		Registry: reg,
		Now:      time.Now,
	}
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// =============================================================================
// COMPLETION TYPE
// =============================================================================

// Completion represents a completion suggestion.
type Completion struct {
	// Value to insert
	Value string

	// Description shown alongside
	Description string
}
