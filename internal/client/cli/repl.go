package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// navigator is the minimal command surface the REPL needs. The real App type
// satisfies it; tests can provide a lightweight stub.
type navigator interface {
	isSignedIn() bool
	Navigate(ctx context.Context, path string)
	Logout(ctx context.Context) error
}

// runREPL reads a line per iteration and dispatches it. Any token starting
// with "/" is treated as a route path and navigated to (the guard applies);
// the rest are the fixed commands below. The loop exits on scanner EOF or
// when the user types "exit" or "quit".
func runREPL(ctx context.Context, n navigator, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("portal %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch {
		case cmd == "help":
			printlnFn("Commands: <route path> (e.g. /main-login, /doctor-signin, /home), logout, exit")
			if !n.isSignedIn() {
				printlnFn("Start at /main-login to sign in or create an account.")
			}

		case cmd == "logout":
			_ = n.Logout(ctx)

		case cmd == "exit" || cmd == "quit":
			printlnFn("Bye!")
			return

		case strings.HasPrefix(cmd, "/"):
			n.Navigate(ctx, cmd)

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
