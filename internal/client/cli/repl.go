package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Fprintln

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Forgot(ctx context.Context) error
	Profile(ctx context.Context) error
	Strength(ctx context.Context) error
	Logout(ctx context.Context) error
	Backup(ctx context.Context) error
	Restore(ctx context.Context, key string) error
}

// runREPL reads a line from reader, parses the first token as the
// command and dispatches to a. Handlers prompt on the same reader, so
// their answers are never taken for commands. The loop exits on EOF or
// when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help                show available commands
//	  - login               authenticate
//	  - signup | register   create an account
//	  - forgot              request a password reset link
//	  - strength            score a password
//	  - backup              upload the store to the snapshot bucket
//	  - restore [key]       merge a snapshot into the store
//	  - exit | quit         leave the program
//
//	Logged in, additionally:
//	  - profile             show the stored profile
//	  - logout              log out
//
// Handlers print their own errors, so the returned ones are ignored here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		printlnFn(out, fmt.Sprintf("mrtrade %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(out, "Available commands: profile, strength, backup, restore [key], logout, exit")
			} else {
				printlnFn(out, "Available commands: login, signup, forgot, strength, backup, restore [key], exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup", "register":
			_ = a.Signup(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "strength":
			_ = a.Strength(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "backup":
			_ = a.Backup(ctx)

		case "restore":
			key := ""
			if len(args) > 0 {
				key = args[0]
			}
			_ = a.Restore(ctx, key)

		case "exit", "quit":
			printlnFn(out, "Bye!")
			return

		default:
			printlnFn(out, "Unknown command:", cmd)
		}
	}
}
