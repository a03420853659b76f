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
	Info(ctx context.Context) error
	Edit(ctx context.Context) error
	RefreshToken(ctx context.Context) error
	ShowToken(ctx context.Context) error
	SetAutoRefresh(ctx context.Context, on bool) error
	ToggleDarkMode(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the CaffeTrack CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - darkmode       — toggle the dark mode preference
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - info           — show the user profile
//	  - edit           — edit the user profile
//	  - token          — inspect the stored access token
//	  - refresh        — refresh the access token now
//	  - autorefresh on|off — control the background refresh scheduler
//	  - darkmode       — toggle the dark mode preference
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ct %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: info, edit, token, refresh, autorefresh on|off, darkmode, logout, exit")
			} else {
				printlnFn("Available commands: register, login, darkmode, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "info":
			_ = a.Info(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "token":
			_ = a.ShowToken(ctx)

		case "refresh":
			_ = a.RefreshToken(ctx)

		case "autorefresh":
			if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
				printlnFn("Usage: autorefresh on|off")
				continue
			}
			_ = a.SetAutoRefresh(ctx, args[0] == "on")

		case "darkmode":
			_ = a.ToggleDarkMode(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
