package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"
)

// printlnFn and printFn are test seams for user-facing REPL output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// isTerminal reports whether stdin is interactive; prompts are printed only
// then so that piped scripts produce clean output.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

var errUsage = errors.New("usage")

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// execIface is the command surface the REPL needs. App satisfies it; tests
// provide a stub.
type execIface interface {
	status() string
	help() []string
	dispatch(ctx context.Context, name string, args []string) (bool, error)
}

func (a *App) register(name, usage string, run func(ctx context.Context, args []string) error) {
	if a.cmds == nil {
		a.cmds = make(map[string]command)
	}
	a.cmds[name] = command{usage: usage, run: run}
	a.order = append(a.order, name)
}

func (a *App) help() []string {
	names := append([]string(nil), a.order...)
	sort.Strings(names)
	out := make([]string, 0, len(names)+2)
	for _, n := range names {
		out = append(out, "  "+a.cmds[n].usage)
	}
	return append(out, "  help", "  exit | quit")
}

func (a *App) dispatch(ctx context.Context, name string, args []string) (bool, error) {
	c, ok := a.cmds[name]
	if !ok {
		return false, nil
	}
	err := c.run(ctx, args)
	if errors.Is(err, errUsage) {
		err = fmt.Errorf("usage: %s", c.usage)
	}
	return true, err
}

// runREPL reads one command per line from reader, dispatches it and prints
// errors. It returns on EOF or when the user types "exit" or "quit".
// Command errors never end the loop.
func runREPL(ctx context.Context, a execIface, interactive bool, reader *bufio.Reader) {
	for {
		if interactive {
			if s := a.status(); s != "" {
				printFn(fmt.Sprintf("tq [%s]> ", s))
			} else {
				printFn("tq> ")
			}
		}
		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)

		if len(parts) > 0 {
			cmd := parts[0]
			switch cmd {
			case "help":
				printlnFn("Available commands:")
				for _, l := range a.help() {
					printlnFn(l)
				}

			case "exit", "quit":
				printlnFn("Bye!")
				return

			default:
				found, err := a.dispatch(ctx, cmd, parts[1:])
				switch {
				case !found:
					printlnFn("Unknown command:", cmd)
				case err != nil:
					printlnFn("error:", err)
				}
			}
		}

		if readErr != nil {
			return
		}
	}
}
