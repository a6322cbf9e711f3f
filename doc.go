// Package clams builds simple, nested command-line interfaces.
//
// Argument metadata, subcommand trees and handler bindings accumulate on
// [Command] values in whatever order is convenient. A single [Command.Init]
// call renders the whole tree into the underlying parser, and
// [Command.ParseArgs] parses the arguments and dispatches to the handler of
// the selected command:
//
//	salutation := clams.New("salutation")
//
//	salutation.Register("hello", func(ctx context.Context, inv *clams.Invocation) error {
//		fmt.Fprintf(inv.Stdout, "Hello %s\n", clams.Get[string](inv, "name"))
//		return nil
//	}, clams.PositionalArg("name", "who to greet", clams.Optional(), clams.Default("Nick")))
//
//	if err := salutation.Init(); err != nil {
//		log.Fatal(err)
//	}
//	if err := salutation.ParseArgs(context.Background(), os.Args[1:], nil); err != nil {
//		log.Fatal(err)
//	}
//
// All actual parsing is delegated: tokenizing, flag types, required flags,
// environment bindings, help text and error rendering belong to the
// underlying parser. This package only accumulates declarative metadata and
// replays it against the parser's builder API.
package clams
