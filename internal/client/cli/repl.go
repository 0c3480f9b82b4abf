package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/schooladmin/internal/client/client"
	"github.com/dmitrijs2005/schooladmin/internal/client/models"
	"github.com/dmitrijs2005/schooladmin/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, status, help, exit"
	helpLoggedIn  = "Available commands: list <kind> [-p N] [search], show <kind> <id>, add <kind>, " +
		"edit <kind> <id>, delete <kind> <id>, whoami, status, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the console.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments. The
// loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help           show available commands
//	  - login          sign in with a one-time code
//	  - status         connection and session status
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - list <kind> [-p N] [search]  list a collection page
//	  - show <kind> <id>             show one record
//	  - add <kind>                   create a record
//	  - edit <kind> <id>             update a record
//	  - delete <kind> <id>           delete a record
//	  - whoami                       show the signed-in user
//	  - logout                       sign out
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("school %s> ", statusFn()))
		line, err := ReadLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			report(a.Login(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "whoami":
			report(a.WhoAmI(ctx))

		case "status":
			report(a.Status(ctx))

		case "l", "list", "ls":
			report(a.List(ctx, args))

		case "show", "get":
			report(a.Show(ctx, args))

		case "add", "new":
			report(a.Add(ctx, args))

		case "edit":
			report(a.Edit(ctx, args))

		case "delete", "rm":
			report(a.Delete(ctx, args))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if ctx.Err() != nil {
			return
		}
	}
}

// report prints err in user terms.
func report(err error) {
	if err == nil {
		return
	}

	var verr *models.ValidationError
	var apiErr *client.APIError
	var usage usageError

	switch {
	case errors.As(err, &usage):
		printlnFn("Usage:", string(usage))
	case errors.Is(err, io.EOF):
		printlnFn("Input closed.")
	case errors.Is(err, common.ErrNotLoggedIn):
		printlnFn("You are not logged in. Type 'login' first.")
	case errors.As(err, &verr):
		for _, name := range verr.FieldNames() {
			printlnFn(fmt.Sprintf("  %s: %s", name, verr.Fields[name]))
		}
	case errors.Is(err, client.ErrUnauthorized):
		printlnFn("Session rejected by the server. Please log in again.")
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable, try again later.")
	case errors.As(err, &apiErr):
		printlnFn("Error:", apiErr.Error())
	default:
		printlnFn("Error:", err.Error())
	}
}

// usageError is returned when a command is called with the wrong arguments.
type usageError string

func (u usageError) Error() string {
	return "usage: " + string(u)
}
