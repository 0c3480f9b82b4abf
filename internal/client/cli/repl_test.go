package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/schooladmin/internal/client/client"
	"github.com/dmitrijs2005/schooladmin/internal/client/models"
	"github.com/dmitrijs2005/schooladmin/internal/common"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
	args  [][]string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(ctx context.Context) error { return f.record("whoami", nil) }
func (f *fakeExec) Status(ctx context.Context) error { return f.record("status", nil) }
func (f *fakeExec) List(ctx context.Context, args []string) error {
	return f.record("list", args)
}
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	return f.record("show", args)
}
func (f *fakeExec) Add(ctx context.Context, args []string) error {
	return f.record("add", args)
}
func (f *fakeExec) Edit(ctx context.Context, args []string) error {
	return f.record("edit", args)
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	return f.record("delete", args)
}

// capturePrint replaces printlnFn for the duration of the test.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrint(t)

	input := lines(
		"help",
		"login",
		"help",
		"list students -p 2 asha",
		"ls classes",
		"show employees 7",
		"get employees 8",
		"add holidays",
		"edit sections 3",
		"rm sections 3",
		"whoami",
		"status",
		"foobar",
		"logout",
		"exit",
		"list never-reached",
	)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "(online)" }, rdr(input))

	assert.Equal(t, []string{
		"login", "list", "list", "show", "show", "add", "edit", "delete",
		"whoami", "status", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"students", "-p", "2", "asha"}, exec.args[1])
	assert.Equal(t, []string{"employees", "8"}, exec.args[4])

	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "school (online)>")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrint(t)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "" }, rdr("\n  \nstatus"))

	assert.Equal(t, []string{"status"}, exec.calls)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrint(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExec{}

	runREPL(ctx, exec, func() string { return "" }, rdr(lines("status", "whoami")))

	assert.Equal(t, []string{"status"}, exec.calls)
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"usage", usageError("show <kind> <id>"), "Usage: show <kind> <id>"},
		{"eof", fmt.Errorf("read: %w", io.EOF), "Input closed."},
		{"not logged in", common.ErrNotLoggedIn, "You are not logged in. Type 'login' first."},
		{"validation", &models.ValidationError{Fields: map[string]string{"name": "name is required"}}, "name: name is required"},
		{"unauthorized", fmt.Errorf("list: %w", client.ErrUnauthorized), "Session rejected by the server. Please log in again."},
		{"unavailable", client.ErrUnavailable, "Server unavailable, try again later."},
		{"api", &client.APIError{StatusCode: 409, Message: "duplicate code"}, "Error: request rejected: duplicate code"},
		{"other", errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := capturePrint(t)
			report(tt.err)
			if assert.Len(t, *out, 1) {
				assert.Equal(t, tt.want, (*out)[0])
			}
		})
	}

	t.Run("nil", func(t *testing.T) {
		out := capturePrint(t)
		report(nil)
		assert.Empty(t, *out)
	})
}
