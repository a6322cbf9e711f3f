package clams

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/unbservices/clams/pkg/suggest"
)

var (
	// ErrInitialized is returned by Init when the command tree has already
	// been rendered into the underlying parser.
	ErrInitialized = errors.New("command tree already initialized")

	// ErrNotInitialized is returned by ParseArgs when Init has not been
	// called on the root command.
	ErrNotInitialized = errors.New("command tree not initialized")
)

// UnknownCommandError is returned when the arguments name a subcommand that
// does not exist.
type UnknownCommandError struct {
	Command *Command // the command whose subcommands were searched
	Name    string   // the unknown name
}

func (e *UnknownCommandError) Error() string {
	var known []string
	for _, sub := range e.Command.subcommands {
		known = append(known, sub.name)
	}
	suggestions := suggest.Similar(e.Name, known, 3)
	if len(suggestions) > 0 {
		return fmt.Sprintf("unknown command %q. Did you mean one of these?\n\t%s",
			e.Name,
			strings.Join(suggestions, "\n\t"))
	}
	return fmt.Sprintf("unknown command %q", e.Name)
}
