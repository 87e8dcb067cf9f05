package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

// command is one REPL verb. auth commands are hidden and refused until a
// session exists.
type command struct {
	name  string
	usage string
	help  string
	auth  bool
	run   func(ctx context.Context, args []string) error
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	commands() []command
	handleError(ctx context.Context, err error)
}

// runREPL reads lines from r, parses the first token as the command and
// dispatches it with the remaining tokens as arguments. The loop exits on
// EOF, on "exit"/"quit", or when ctx is done.
//
// "help" lists the commands usable in the current state. Command errors are
// passed to handleError and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	byName := make(map[string]command)
	for _, c := range a.commands() {
		byName[c.name] = c
	}

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "notehub %s> ", statusFn())
		line, err := readLine(r)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "help":
			printHelp(w, byName, a.isLoggedIn())
			continue
		}

		c, ok := byName[name]
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if c.auth && !a.isLoggedIn() {
			fmt.Fprintf(w, "'%s' requires a login\n", name)
			continue
		}
		if err := c.run(ctx, args); err != nil {
			a.handleError(ctx, err)
		}
	}
}

func printHelp(w io.Writer, cmds map[string]command, loggedIn bool) {
	names := make([]string, 0, len(cmds))
	for n, c := range cmds {
		if c.auth && !loggedIn {
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Available commands:")
	for _, n := range names {
		fmt.Fprintf(w, "  %-28s %s\n", cmds[n].usage, cmds[n].help)
	}
	fmt.Fprintf(w, "  %-28s %s\n", "exit | quit", "leave the program")
}
