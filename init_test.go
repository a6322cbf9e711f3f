package clams

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("init exactly once", func(t *testing.T) {
		t.Parallel()
		root := New("root")
		root.Register("sub", nopExec)
		require.NoError(t, root.Init())
		require.ErrorIs(t, root.Init(), ErrInitialized)
	})
	t.Run("init on non-root", func(t *testing.T) {
		t.Parallel()
		root := New("root")
		sub := root.Register("sub", nopExec)
		err := sub.Init()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `command "sub" is not a root command`)
	})
	t.Run("parse before init", func(t *testing.T) {
		t.Parallel()
		root := New("root")
		root.Register("sub", nopExec)
		err := root.ParseArgs(context.Background(), []string{"sub"}, nil)
		require.ErrorIs(t, err, ErrNotInitialized)
	})
	t.Run("parse on non-root", func(t *testing.T) {
		t.Parallel()
		root := New("root")
		sub := root.Register("sub", nopExec)
		require.NoError(t, root.Init())
		err := sub.ParseArgs(context.Background(), nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a root command")
	})
}

func TestInitValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		build    func() *Command
		contains string
	}{
		{
			name:     "root has no name",
			build:    func() *Command { c := New(""); c.SetHandler(nopExec); return c },
			contains: "root command has no name",
		},
		{
			name: "subcommand has no name",
			build: func() *Command {
				root := New("root")
				root.Register("", nopExec)
				return root
			},
			contains: "has no name",
		},
		{
			name:     "name contains spaces",
			build:    func() *Command { c := New("to do"); c.SetHandler(nopExec); return c },
			contains: "contains spaces",
		},
		{
			name:     "no handler and no subcommands",
			build:    func() *Command { return New("root") },
			contains: "has no handler and no subcommands",
		},
		{
			name: "positionals without handler",
			build: func() *Command {
				root := New("root")
				root.AddArg(PositionalArg("path", ""))
				root.Register("sub", nopExec)
				return root
			},
			contains: "declares positional arguments but has no handler",
		},
		{
			name: "duplicate subcommand names",
			build: func() *Command {
				root := New("root")
				root.Register("sub", nopExec)
				root.Register("SUB", nopExec)
				return root
			},
			contains: "duplicate subcommand name",
		},
		{
			name: "duplicate argument names",
			build: func() *Command {
				root := New("root")
				root.SetHandler(nopExec)
				root.AddArg(BoolArg("verbose", "", Alias("v")))
				root.AddArg(StringArg("v", ""))
				return root
			},
			contains: "duplicate argument name",
		},
		{
			name: "subcommand reattached elsewhere",
			build: func() *Command {
				root := New("root")
				sub := root.Register("sub", nopExec)
				other := New("other")
				other.AddCommand(sub)
				return root
			},
			contains: "attached to another parent",
		},
		{
			name: "required positional after optional",
			build: func() *Command {
				root := New("root")
				root.Register("sub", nopExec,
					PositionalArg("first", "", Optional()),
					PositionalArg("second", ""),
				)
				return root
			},
			contains: "follows an optional one",
		},
		{
			name: "positional after variadic",
			build: func() *Command {
				root := New("root")
				root.Register("sub", nopExec,
					PositionalArg("paths", "", Variadic()),
					PositionalArg("dest", ""),
				)
				return root
			},
			contains: "follows a variadic one",
		},
		{
			name: "default kind mismatch",
			build: func() *Command {
				root := New("root")
				root.Register("sub", nopExec, IntArg("count", "", Default("five")))
				return root
			},
			contains: "does not match kind int",
		},
		{
			name: "choices on non-string flag",
			build: func() *Command {
				root := New("root")
				root.Register("sub", nopExec, BoolArg("mode", "", Choices("on", "off")))
				return root
			},
			contains: "choices apply to string arguments only",
		},
		{
			name: "typed positional",
			build: func() *Command {
				root := New("root")
				sub := root.Register("sub", nopExec)
				sub.AddArg(Argument{Name: "count", Kind: IntKind, Positional: true})
				return root
			},
			contains: "must be a string",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.build().Init()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
