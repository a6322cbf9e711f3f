package clams

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/unbservices/clams/pkg/textutil"
)

// descriptionWidth is the wrap width for long command descriptions.
const descriptionWidth = 80

// Init validates the accumulated metadata and renders it into the underlying
// parser. Only the root of a tree can be initialized, and only once; after a
// successful Init the tree is frozen and ready for [Command.ParseArgs].
func (c *Command) Init() error {
	if c.parent != nil {
		return errors.Errorf("command %q is not a root command", c.name)
	}
	if c.initialized {
		return ErrInitialized
	}
	if err := validateTree(c, nil); err != nil {
		return errors.Wrap(err, "init")
	}

	flags, err := buildFlags(c.args)
	if err != nil {
		return errors.Wrapf(err, "init: command %q", c.name)
	}
	app := &cli.App{
		Name:            c.name,
		Usage:           c.title,
		Description:     wrapDescription(c.description),
		ArgsUsage:       positionalUsage(c.args),
		Flags:           flags,
		HideHelpCommand: true,
		Action:          c.action(),
	}
	for _, sub := range c.subcommands {
		cmd, err := materialize(sub)
		if err != nil {
			return errors.Wrap(err, "init")
		}
		app.Commands = append(app.Commands, cmd)
	}

	c.app = app
	c.initialized = true
	return nil
}

// materialize recursively renders a subtree into the underlying parser's
// command type.
func materialize(c *Command) (*cli.Command, error) {
	flags, err := buildFlags(c.args)
	if err != nil {
		return nil, errors.Wrapf(err, "command %q", c.name)
	}
	cmd := &cli.Command{
		Name:            c.name,
		Usage:           c.title,
		Description:     wrapDescription(c.description),
		ArgsUsage:       positionalUsage(c.args),
		Flags:           flags,
		HideHelpCommand: true,
		Action:          c.action(),
	}
	for _, sub := range c.subcommands {
		sc, err := materialize(sub)
		if err != nil {
			return nil, err
		}
		cmd.Subcommands = append(cmd.Subcommands, sc)
	}
	c.cmd = cmd
	return cmd, nil
}

func buildFlags(args []Argument) ([]cli.Flag, error) {
	var flags []cli.Flag
	for _, a := range args {
		if a.Positional {
			continue
		}
		f, err := buildFlag(a)
		if err != nil {
			return nil, err
		}
		flags = append(flags, f)
	}
	return flags, nil
}

func buildFlag(a Argument) (cli.Flag, error) {
	usage := flagUsage(a)
	switch a.Kind {
	case StringKind:
		f := &cli.StringFlag{Name: a.Name, Aliases: a.Aliases, Usage: usage, Required: a.Required, EnvVars: a.EnvVars, Hidden: a.Hidden}
		if a.Default != nil {
			f.Value = a.Default.(string)
		}
		return f, nil
	case BoolKind:
		f := &cli.BoolFlag{Name: a.Name, Aliases: a.Aliases, Usage: usage, Required: a.Required, EnvVars: a.EnvVars, Hidden: a.Hidden}
		if a.Default != nil {
			f.Value = a.Default.(bool)
		}
		return f, nil
	case IntKind:
		f := &cli.IntFlag{Name: a.Name, Aliases: a.Aliases, Usage: usage, Required: a.Required, EnvVars: a.EnvVars, Hidden: a.Hidden}
		if a.Default != nil {
			f.Value = a.Default.(int)
		}
		return f, nil
	case Float64Kind:
		f := &cli.Float64Flag{Name: a.Name, Aliases: a.Aliases, Usage: usage, Required: a.Required, EnvVars: a.EnvVars, Hidden: a.Hidden}
		if a.Default != nil {
			f.Value = a.Default.(float64)
		}
		return f, nil
	case DurationKind:
		f := &cli.DurationFlag{Name: a.Name, Aliases: a.Aliases, Usage: usage, Required: a.Required, EnvVars: a.EnvVars, Hidden: a.Hidden}
		if a.Default != nil {
			f.Value = a.Default.(time.Duration)
		}
		return f, nil
	case StringSliceKind:
		f := &cli.StringSliceFlag{Name: a.Name, Aliases: a.Aliases, Usage: usage, Required: a.Required, EnvVars: a.EnvVars, Hidden: a.Hidden}
		if a.Default != nil {
			f.Value = cli.NewStringSlice(a.Default.([]string)...)
		}
		return f, nil
	}
	return nil, errors.Errorf("argument %q: unsupported kind %s", a.Name, a.Kind)
}

// flagUsage appends the metavar as a backquoted placeholder, which the
// underlying parser picks up for the flag's help line.
func flagUsage(a Argument) string {
	if a.Metavar == "" || strings.Contains(a.Usage, "`") {
		return a.Usage
	}
	return a.Usage + " `" + a.Metavar + "`"
}

// positionalUsage renders the argument hint shown in the usage line, e.g.
// "<name> [url] [paths...]".
func positionalUsage(args []Argument) string {
	var parts []string
	for _, a := range args {
		if !a.Positional {
			continue
		}
		name := a.Name
		if a.Metavar != "" {
			name = a.Metavar
		}
		switch {
		case a.Variadic:
			parts = append(parts, "["+name+"...]")
		case a.Optional:
			parts = append(parts, "["+name+"]")
		default:
			parts = append(parts, "<"+name+">")
		}
	}
	return strings.Join(parts, " ")
}

func wrapDescription(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(textutil.Wrap(s, descriptionWidth), "\n")
}
