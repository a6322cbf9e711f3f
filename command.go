package clams

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// ExecFunc is a command handler. It receives the values parsed for the
// selected command through inv.
type ExecFunc func(ctx context.Context, inv *Invocation) error

// Command is a node in the command hierarchy. Metadata accumulates on it in
// any order; nothing touches the underlying parser until [Command.Init] is
// called on the root.
type Command struct {
	name        string
	title       string
	description string

	args        []Argument
	subcommands []*Command
	handler     ExecFunc

	parent *Command

	// Set during Init: app on the root, cmd on everything else.
	app         *cli.App
	cmd         *cli.Command
	initialized bool

	// Streams for the current ParseArgs call, root only.
	options *RunOptions
}

// CommandOption configures a Command at construction time.
type CommandOption func(*Command)

// WithTitle sets the one-line summary shown in usage output.
func WithTitle(title string) CommandOption {
	return func(c *Command) { c.title = title }
}

// WithDescription sets the longer help text shown on the command's own help
// screen. It is word-wrapped during initialization.
func WithDescription(description string) CommandOption {
	return func(c *Command) { c.description = description }
}

// New creates an empty command with the given name.
func New(name string, opts ...CommandOption) *Command {
	c := &Command{name: name}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the command's name.
func (c *Command) Name() string { return c.name }

// Title returns the command's one-line summary.
func (c *Command) Title() string { return c.title }

// Description returns the command's long help text.
func (c *Command) Description() string { return c.description }

// AddArg appends argument metadata. Declaration order is preserved: it
// determines help order and positional binding order.
func (c *Command) AddArg(args ...Argument) {
	c.mustBeMutable("AddArg")
	c.args = append(c.args, args...)
}

// SetHandler sets the function invoked when this command is selected.
func (c *Command) SetHandler(handler ExecFunc) {
	c.mustBeMutable("SetHandler")
	c.handler = handler
}

// AddCommand attaches sub as a child of c and returns sub.
func (c *Command) AddCommand(sub *Command) *Command {
	c.mustBeMutable("AddCommand")
	sub.parent = c
	c.subcommands = append(c.subcommands, sub)
	return sub
}

// Register creates a command with the given name, handler and arguments,
// attaches it as a child of c and returns it.
func (c *Command) Register(name string, handler ExecFunc, args ...Argument) *Command {
	sub := New(name)
	sub.handler = handler
	sub.args = append(sub.args, args...)
	return c.AddCommand(sub)
}

// mustBeMutable panics when the tree has already been materialized. Mutating
// a rendered tree is a programming error, and silently ignoring the call
// would be worse than failing loud.
func (c *Command) mustBeMutable(op string) {
	if c.root().initialized {
		panic(fmt.Sprintf("clams: %s called on command %q after Init", op, c.name))
	}
}

func (c *Command) root() *Command {
	r := c
	for r.parent != nil {
		r = r.parent
	}
	return r
}

func (c *Command) findSubCommand(name string) *Command {
	for _, sub := range c.subcommands {
		if strings.EqualFold(sub.name, name) {
			return sub
		}
	}
	return nil
}

func (c *Command) hasPositionals() bool {
	for _, a := range c.args {
		if a.Positional {
			return true
		}
	}
	return false
}

func validateTree(c *Command, path []string) error {
	if c.name == "" {
		if len(path) == 0 {
			return errors.New("root command has no name")
		}
		return errors.Errorf("subcommand in path %q has no name", strings.Join(path, " "))
	}
	if strings.ContainsAny(c.name, " \t") {
		return errors.Errorf("command name %q contains spaces", c.name)
	}

	currentPath := append(path, c.name)
	joined := strings.Join(currentPath, " ")

	if c.handler == nil && len(c.subcommands) == 0 {
		return errors.Errorf("command %q has no handler and no subcommands", joined)
	}
	if c.handler == nil && c.hasPositionals() {
		return errors.Errorf("command %q declares positional arguments but has no handler", joined)
	}

	seenArgs := make(map[string]struct{})
	var sawOptional, sawVariadic bool
	for _, a := range c.args {
		if err := a.validate(); err != nil {
			return errors.Wrapf(err, "command %q", joined)
		}
		for _, n := range append([]string{a.Name}, a.Aliases...) {
			key := strings.ToLower(n)
			if _, dup := seenArgs[key]; dup {
				return errors.Errorf("command %q: duplicate argument name %q", joined, n)
			}
			seenArgs[key] = struct{}{}
		}
		if !a.Positional {
			continue
		}
		if sawVariadic {
			return errors.Errorf("command %q: positional argument %q follows a variadic one", joined, a.Name)
		}
		if sawOptional && !a.Optional && !a.Variadic {
			return errors.Errorf("command %q: required positional argument %q follows an optional one", joined, a.Name)
		}
		if a.Optional {
			sawOptional = true
		}
		if a.Variadic {
			sawVariadic = true
		}
	}

	seenSubs := make(map[string]struct{})
	for _, sub := range c.subcommands {
		if sub.parent != c {
			return errors.Errorf("command %q: subcommand %q is attached to another parent", joined, sub.name)
		}
		key := strings.ToLower(sub.name)
		if _, dup := seenSubs[key]; dup {
			return errors.Errorf("command %q: duplicate subcommand name %q", joined, sub.name)
		}
		seenSubs[key] = struct{}{}
		if err := validateTree(sub, currentPath); err != nil {
			return err
		}
	}
	return nil
}
