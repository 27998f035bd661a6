package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	state string
	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) status() string { return f.state }
func (f *fakeExec) help() []string { return []string{"  open <id>"} }
func (f *fakeExec) dispatch(_ context.Context, name string, args []string) (bool, error) {
	switch name {
	case "open", "show", "fail":
	default:
		return false, nil
	}
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	if name == "open" {
		f.state = "Trip to Nepal"
	}
	if name == "fail" {
		return true, f.err
	}
	return true, nil
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	origPrintln, origPrint := printlnFn, printFn
	var lines []string
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	printFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn, printFn = origPrintln, origPrint })
	return &lines
}

func TestRunREPL_DispatchesInOrder(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"open abc",
		"",
		"show",
		"foobar",
		"exit",
		"show",
	}, "\n"))
	exec := &fakeExec{}

	runREPL(context.Background(), exec, false, bufio.NewReader(input))

	assert.Equal(t, []string{"open", "show"}, exec.calls)
	assert.Equal(t, []string{"abc"}, exec.args[0])
	assert.Contains(t, *out, "Available commands:")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_ErrorsDoNotStopTheLoop(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, false, bufio.NewReader(strings.NewReader("fail\nshow\n")))

	assert.Equal(t, []string{"fail", "show"}, exec.calls)
	assert.Contains(t, *out, "error: boom")
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, true, bufio.NewReader(strings.NewReader("open x\nquit\n")))

	assert.Contains(t, *out, "tq> ")
	assert.Contains(t, *out, "tq [Trip to Nepal]> ")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, false, bufio.NewReader(strings.NewReader("show")))

	assert.Equal(t, []string{"show"}, exec.calls)
}
