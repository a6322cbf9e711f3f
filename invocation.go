package clams

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
)

// Invocation carries everything a handler needs: the values the underlying
// parser produced, the bound positionals, any leftover arguments, and the
// standard streams for this run.
type Invocation struct {
	// Args contains the tokens left over after positional binding.
	Args []string

	// Standard I/O streams, injectable through RunOptions.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	cmd    *Command
	cli    *cli.Context
	values map[string]any // bound positionals, by argument name
}

// Get retrieves a parsed value by argument name, with type inference.
// Positionals resolve first, then flags; flag lookup walks the command
// lineage, so a subcommand handler can read flags declared on any ancestor.
// Example usage:
//
//	name := clams.Get[string](inv, "name")
//	all := clams.Get[bool](inv, "all")
//	tags := clams.Get[[]string](inv, "tag")
//
// If the name is unknown, or the requested type does not match the declared
// kind, Get panics: both are programming errors, and it's better to fail
// LOUD and EARLY than to limp along with a zero value.
func Get[T any](inv *Invocation, name string) T {
	if v, ok := inv.values[name]; ok {
		if t, ok := v.(T); ok {
			return t
		}
		panic(fmt.Sprintf("internal error: type mismatch for argument %q: bound %T, requested %T", name, v, *new(T)))
	}
	// Slice flags don't round-trip through the parser's generic value
	// lookup; resolve them against the declared metadata instead.
	if a := inv.lookupArg(name); a != nil && a.Kind == StringSliceKind {
		v := inv.cli.StringSlice(a.Name)
		if t, ok := any(v).(T); ok {
			return t
		}
		panic(fmt.Sprintf("internal error: type mismatch for flag %q: parsed %T, requested %T", name, v, *new(T)))
	}
	if v := inv.cli.Value(name); v != nil {
		if t, ok := v.(T); ok {
			return t
		}
		panic(fmt.Sprintf("internal error: type mismatch for flag %q: parsed %T, requested %T", name, v, *new(T)))
	}
	panic(fmt.Sprintf("internal error: no argument or flag named %q", name))
}

// lookupArg finds the flag declaration for name, searching this command
// first and then its ancestors. Aliases match too.
func (inv *Invocation) lookupArg(name string) *Argument {
	for c := inv.cmd; c != nil; c = c.parent {
		for i := range c.args {
			a := &c.args[i]
			if a.Positional {
				continue
			}
			if strings.EqualFold(a.Name, name) {
				return a
			}
			for _, alias := range a.Aliases {
				if strings.EqualFold(alias, name) {
					return a
				}
			}
		}
	}
	return nil
}
