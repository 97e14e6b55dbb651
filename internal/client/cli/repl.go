package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Properties(ctx context.Context) error
	Property(ctx context.Context) error
	AddProperty(ctx context.Context) error
	UploadImage(ctx context.Context) error
	Bookings(ctx context.Context) error
	Book(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the PetSwap CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
//	Anyone:
//	  - help                 show available commands
//	  - properties | p       list properties
//	  - property             show one property with reviews
//	  - exit | quit          leave the program
//
//	Not logged in:
//	  - register             create an account
//	  - login                authenticate
//
//	Logged in:
//	  - me                   show the current identity
//	  - addproperty          list a property
//	  - uploadimage          attach an image to an owned property
//	  - bookings | b         list own bookings
//	  - book                 book a property
//	  - logout               log out
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("petswap (%s)> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (p)roperties, property, addproperty, uploadimage, (b)ookings, book, me, logout, exit")
			} else {
				printlnFn("Available commands: (p)roperties, property, register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "me":
			_ = a.Me(ctx)

		case "p", "properties":
			_ = a.Properties(ctx)

		case "property":
			_ = a.Property(ctx)

		case "addproperty":
			_ = a.AddProperty(ctx)

		case "uploadimage":
			_ = a.UploadImage(ctx)

		case "b", "bookings":
			_ = a.Bookings(ctx)

		case "book":
			_ = a.Book(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
