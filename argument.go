package clams

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Kind identifies the value type an Argument carries. The underlying parser
// owns the actual coercion; the kind only selects which flag type is built
// during initialization.
type Kind uint8

const (
	StringKind Kind = iota
	BoolKind
	IntKind
	Float64Kind
	DurationKind
	StringSliceKind
)

// String returns a lower-case ASCII representation of the kind.
func (k Kind) String() string {
	switch k {
	case StringKind:
		return "string"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case Float64Kind:
		return "float64"
	case DurationKind:
		return "duration"
	case StringSliceKind:
		return "string slice"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Argument is the declarative description of a single command-line argument.
// It accumulates everything needed to later build a concrete flag, or bind a
// positional; nothing is validated or parsed until the command tree is
// initialized.
type Argument struct {
	// Name is the canonical name, without dashes. For flags it becomes the
	// long option; for positionals it is the lookup key in [Get].
	Name string

	// Aliases are alternative (typically single-letter) option names.
	Aliases []string

	Kind     Kind
	Usage    string
	Default  any
	Required bool
	Choices  []string
	EnvVars  []string
	Metavar  string
	Hidden   bool

	// Positional arguments are bound from the leftover tokens in declaration
	// order, after the underlying parser has consumed all flags.
	Positional bool
	Optional   bool // positional may be absent; Default is substituted
	Variadic   bool // positional consumes all remaining tokens
}

// ArgOption configures an Argument at construction time.
type ArgOption func(*Argument)

// Alias adds alternative option names.
func Alias(aliases ...string) ArgOption {
	return func(a *Argument) { a.Aliases = append(a.Aliases, aliases...) }
}

// Default sets the value produced when the argument is absent. The value
// must match the argument's kind; mismatches are reported at Init.
func Default(value any) ArgOption {
	return func(a *Argument) { a.Default = value }
}

// Required marks a flag as mandatory.
func Required() ArgOption {
	return func(a *Argument) { a.Required = true }
}

// Choices restricts a string argument to the given values.
func Choices(values ...string) ArgOption {
	return func(a *Argument) { a.Choices = append(a.Choices, values...) }
}

// Env binds a flag to the first set environment variable of the given names.
func Env(vars ...string) ArgOption {
	return func(a *Argument) { a.EnvVars = append(a.EnvVars, vars...) }
}

// Metavar sets the placeholder shown for the argument in help text.
func Metavar(name string) ArgOption {
	return func(a *Argument) { a.Metavar = name }
}

// Hidden keeps a flag out of help text.
func Hidden() ArgOption {
	return func(a *Argument) { a.Hidden = true }
}

// Optional marks a positional argument as allowed to be absent.
func Optional() ArgOption {
	return func(a *Argument) { a.Optional = true }
}

// Variadic marks the last positional argument as consuming all remaining
// tokens.
func Variadic() ArgOption {
	return func(a *Argument) { a.Variadic = true }
}

// StringArg declares a string flag.
func StringArg(name, usage string, opts ...ArgOption) Argument {
	return newArg(name, usage, StringKind, false, opts)
}

// BoolArg declares a boolean flag.
func BoolArg(name, usage string, opts ...ArgOption) Argument {
	return newArg(name, usage, BoolKind, false, opts)
}

// IntArg declares an integer flag.
func IntArg(name, usage string, opts ...ArgOption) Argument {
	return newArg(name, usage, IntKind, false, opts)
}

// Float64Arg declares a float flag.
func Float64Arg(name, usage string, opts ...ArgOption) Argument {
	return newArg(name, usage, Float64Kind, false, opts)
}

// DurationArg declares a time.Duration flag.
func DurationArg(name, usage string, opts ...ArgOption) Argument {
	return newArg(name, usage, DurationKind, false, opts)
}

// StringSliceArg declares a repeatable string flag.
func StringSliceArg(name, usage string, opts ...ArgOption) Argument {
	return newArg(name, usage, StringSliceKind, false, opts)
}

// PositionalArg declares a positional string argument.
func PositionalArg(name, usage string, opts ...ArgOption) Argument {
	return newArg(name, usage, StringKind, true, opts)
}

func newArg(name, usage string, kind Kind, positional bool, opts []ArgOption) Argument {
	a := Argument{Name: name, Usage: usage, Kind: kind, Positional: positional}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func (a Argument) validate() error {
	if a.Name == "" {
		return errors.New("argument has no name")
	}
	if strings.ContainsAny(a.Name, " \t") {
		return errors.Errorf("argument name %q contains spaces", a.Name)
	}
	if strings.HasPrefix(a.Name, "-") {
		return errors.Errorf("argument name %q must not start with a dash", a.Name)
	}
	if a.Default != nil {
		if err := a.checkDefaultKind(); err != nil {
			return err
		}
	}
	if len(a.Choices) > 0 && a.Kind != StringKind {
		return errors.Errorf("argument %q: choices apply to string arguments only", a.Name)
	}
	if a.Positional {
		if a.Kind != StringKind {
			return errors.Errorf("positional argument %q must be a string; typed inputs belong on flags", a.Name)
		}
		if len(a.Aliases) > 0 {
			return errors.Errorf("positional argument %q cannot have aliases", a.Name)
		}
		if len(a.EnvVars) > 0 {
			return errors.Errorf("positional argument %q cannot be bound to environment variables", a.Name)
		}
		if a.Required {
			return errors.Errorf("positional argument %q is required by default; use Optional to relax it", a.Name)
		}
		if a.Variadic && a.Optional {
			return errors.Errorf("variadic positional argument %q is implicitly optional", a.Name)
		}
		return nil
	}
	if a.Optional || a.Variadic {
		return errors.Errorf("flag %q: Optional and Variadic apply to positional arguments only", a.Name)
	}
	return nil
}

func (a Argument) checkDefaultKind() error {
	var ok bool
	switch a.Kind {
	case StringKind:
		_, ok = a.Default.(string)
	case BoolKind:
		_, ok = a.Default.(bool)
	case IntKind:
		_, ok = a.Default.(int)
	case Float64Kind:
		_, ok = a.Default.(float64)
	case DurationKind:
		_, ok = a.Default.(time.Duration)
	case StringSliceKind:
		_, ok = a.Default.([]string)
	}
	if !ok {
		return errors.Errorf("argument %q: default value of type %T does not match kind %s", a.Name, a.Default, a.Kind)
	}
	return nil
}
