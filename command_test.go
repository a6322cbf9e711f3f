package clams

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopExec(ctx context.Context, inv *Invocation) error { return nil }

func TestNew(t *testing.T) {
	t.Parallel()

	c := New("todo",
		WithTitle("Manage todos"),
		WithDescription("A longer description of the todo command."),
	)
	assert.Equal(t, "todo", c.Name())
	assert.Equal(t, "Manage todos", c.Title())
	assert.Equal(t, "A longer description of the todo command.", c.Description())
}

func TestAddCommand(t *testing.T) {
	t.Parallel()

	root := New("root")
	sub := New("sub")
	got := root.AddCommand(sub)
	require.Same(t, sub, got)
	require.Same(t, root, sub.parent)
	require.Len(t, root.subcommands, 1)
	require.Same(t, sub, root.findSubCommand("sub"))
	require.Same(t, sub, root.findSubCommand("SUB"))
	require.Nil(t, root.findSubCommand("other"))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	root := New("root")
	sub := root.Register("hello", nopExec,
		PositionalArg("name", "who to greet", Optional()),
		BoolArg("shout", "greet loudly"),
	)
	require.Same(t, root, sub.parent)
	require.NotNil(t, sub.handler)
	require.Len(t, sub.args, 2)
	assert.Equal(t, "name", sub.args[0].Name)
	assert.True(t, sub.args[0].Positional)
	assert.Equal(t, "shout", sub.args[1].Name)
	assert.False(t, sub.args[1].Positional)
}

func TestAddArgPreservesOrder(t *testing.T) {
	t.Parallel()

	c := New("c")
	c.SetHandler(nopExec)
	c.AddArg(StringArg("first", ""))
	c.AddArg(
		StringArg("second", ""),
		StringArg("third", ""),
	)
	require.Len(t, c.args, 3)
	assert.Equal(t, "first", c.args[0].Name)
	assert.Equal(t, "second", c.args[1].Name)
	assert.Equal(t, "third", c.args[2].Name)
}

func TestMutationAfterInitPanics(t *testing.T) {
	t.Parallel()

	root := New("root")
	sub := root.Register("sub", nopExec)
	require.NoError(t, root.Init())

	assert.Panics(t, func() { root.AddCommand(New("other")) })
	assert.Panics(t, func() { root.AddArg(BoolArg("verbose", "")) })
	assert.Panics(t, func() { sub.SetHandler(nopExec) })
	assert.Panics(t, func() { sub.Register("leaf", nopExec) })
}
