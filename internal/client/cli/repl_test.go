package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeNav struct {
	signedIn bool
	calls    []string
}

func (f *fakeNav) isSignedIn() bool { return f.signedIn }

func (f *fakeNav) Navigate(ctx context.Context, path string) {
	f.calls = append(f.calls, "navigate "+path)
}

func (f *fakeNav) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.signedIn = false
	return nil
}

func silenceOutput(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPLDispatch(t *testing.T) {
	silenceOutput(t)

	input := strings.Join([]string{
		"help",
		"/doctor-signin",
		"",
		"/home",
		"logout",
		"bogus",
		"exit",
		"/never-reached",
	}, "\n")

	nav := &fakeNav{signedIn: true}
	runREPL(context.Background(), nav, func() string { return "status" }, bufio.NewScanner(strings.NewReader(input)))

	assert.Equal(t, []string{
		"navigate /doctor-signin",
		"navigate /home",
		"logout",
	}, nav.calls)
}

func TestRunREPLExitsOnEOF(t *testing.T) {
	silenceOutput(t)

	nav := &fakeNav{}
	runREPL(context.Background(), nav, func() string { return "" }, bufio.NewScanner(strings.NewReader("/main-login")))

	assert.Equal(t, []string{"navigate /main-login"}, nav.calls)
}
