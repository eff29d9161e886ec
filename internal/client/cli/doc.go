// Package cli provides the interactive portal client.
//
// It wires configuration, the local session store, the REST client, and a
// read-eval-print loop whose commands are the web frontend's route paths:
// typing "/doctor-signin" opens the doctor sign-in screen, "/home" the
// dashboard, and so on. Protected routes are gated by the authentication
// guard; signed-out visitors are redirected to the landing screen.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
