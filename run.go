package clams

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// RunOptions specifies the standard streams for a single [Command.ParseArgs]
// call. Any nil field falls back to the corresponding os stream.
type RunOptions struct {
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

func checkAndSetRunOptions(opt *RunOptions) *RunOptions {
	if opt == nil {
		opt = &RunOptions{}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	return opt
}

// ParseArgs hands args to the underlying parser and dispatches to the
// handler of whichever command it selects, returning the handler's error. A
// nil args slice means os.Args[1:]. The options parameter may be nil, in
// which case the os streams are used.
//
// The root command must have been initialized with [Command.Init] first.
func (c *Command) ParseArgs(ctx context.Context, args []string, options *RunOptions) error {
	if c.parent != nil {
		return errors.Errorf("command %q is not a root command", c.name)
	}
	if !c.initialized {
		return ErrNotInitialized
	}
	if args == nil {
		args = os.Args[1:]
	}
	c.options = checkAndSetRunOptions(options)
	c.app.Writer = c.options.Stdout
	c.app.ErrWriter = c.options.Stderr

	return c.app.RunContext(ctx, append([]string{c.name}, args...))
}

// action builds the callback planted on the materialized command; the
// underlying parser invokes it once parsing has selected this command.
func (c *Command) action() cli.ActionFunc {
	return func(cc *cli.Context) error {
		return c.dispatch(cc)
	}
}

func (c *Command) dispatch(cc *cli.Context) error {
	rest := cc.Args().Slice()

	// The parser routes known subcommands before any action runs, so a
	// leading token here is either positional input or a typo'd subcommand.
	if len(c.subcommands) > 0 && len(rest) > 0 && !c.hasPositionals() {
		return &UnknownCommandError{Command: c, Name: rest[0]}
	}
	if c.handler == nil {
		return c.showHelp(cc)
	}

	values, rest, err := bindPositionals(c.args, rest)
	if err != nil {
		return errors.Wrapf(err, "command %q", c.name)
	}
	for p := c; p != nil; p = p.parent {
		if err := checkFlagChoices(p.args, cc); err != nil {
			return errors.Wrapf(err, "command %q", c.name)
		}
	}

	opts := c.root().options
	inv := &Invocation{
		Args:   rest,
		Stdin:  opts.Stdin,
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
		cmd:    c,
		cli:    cc,
		values: values,
	}
	return c.handler(cc.Context, inv)
}

func (c *Command) showHelp(cc *cli.Context) error {
	if c.parent == nil {
		return cli.ShowAppHelp(cc)
	}
	return cli.ShowSubcommandHelp(cc)
}

// bindPositionals consumes tokens for the declared positional arguments in
// declaration order. Leftover tokens are returned for Invocation.Args.
func bindPositionals(args []Argument, tokens []string) (map[string]any, []string, error) {
	var values map[string]any
	for _, a := range args {
		if !a.Positional {
			continue
		}
		if values == nil {
			values = make(map[string]any)
		}
		switch {
		case a.Variadic:
			for _, tok := range tokens {
				if err := checkChoice(a, tok); err != nil {
					return nil, nil, err
				}
			}
			values[a.Name] = append([]string(nil), tokens...)
			tokens = nil
		case len(tokens) > 0:
			if err := checkChoice(a, tokens[0]); err != nil {
				return nil, nil, err
			}
			values[a.Name] = tokens[0]
			tokens = tokens[1:]
		case a.Optional:
			if a.Default != nil {
				values[a.Name] = a.Default.(string)
			} else {
				values[a.Name] = ""
			}
		default:
			return nil, nil, errors.Errorf("missing required argument %q", a.Name)
		}
	}
	return values, tokens, nil
}

// checkFlagChoices validates declared choices for flags that were set on the
// command line (or through an environment binding); absent flags pass.
func checkFlagChoices(args []Argument, cc *cli.Context) error {
	for _, a := range args {
		if a.Positional || len(a.Choices) == 0 {
			continue
		}
		if !cc.IsSet(a.Name) {
			continue
		}
		if err := checkChoice(a, cc.String(a.Name)); err != nil {
			return err
		}
	}
	return nil
}

func checkChoice(a Argument, value string) error {
	if len(a.Choices) == 0 {
		return nil
	}
	for _, choice := range a.Choices {
		if value == choice {
			return nil
		}
	}
	return errors.Errorf("invalid value %q for %q: allowed values are %s", value, a.Name, strings.Join(a.Choices, ", "))
}
